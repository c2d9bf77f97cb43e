package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// MinStock es el umbral de alerta: cuando el stock resultante de un movimiento
// queda en o por debajo de este valor, se generan notificaciones LOW_STOCK.
// El motor de movimientos solo lee productos, nunca los muta.
type Product struct {
	ID          int64
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	MinStock    int64           // umbral de stock bajo (>= 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
