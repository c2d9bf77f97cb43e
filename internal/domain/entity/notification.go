package entity

import (
	"encoding/json"
	"time"
)

// Tipos y estados de notificación.
const (
	NotificationTypeLowStock = "LOW_STOCK"

	NotificationStatusNew  = "NEW"
	NotificationStatusRead = "READ"
)

// Notification es una alerta en-app dirigida a un usuario. Las crea el trigger
// de stock bajo dentro de la transacción del movimiento; solo la operación de
// lectura (marcar como leída) la muta después.
type Notification struct {
	ID        int64
	Type      string          // LOW_STOCK
	UserID    int64
	Payload   json.RawMessage // datos estructurados del evento
	Status    string          // NEW, READ
	CreatedAt time.Time
	ReadAt    *time.Time
}
