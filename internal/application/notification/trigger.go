package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LowStockRoles son los roles que reciben alertas de stock bajo.
var LowStockRoles = []string{entity.RoleOwner, entity.RoleManager}

// LowStockPayload es el payload estructurado de una alerta LOW_STOCK.
type LowStockPayload struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	WarehouseID int64  `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	MinStock    int64  `json:"min_stock"`
}

// Trigger crea notificaciones dentro de la transacción del caller: los repos
// recibidos deben estar atados a la misma tx para que un rollback no deje
// notificaciones huérfanas.
type Trigger struct{}

// NewTrigger construye el trigger.
func NewTrigger() *Trigger { return &Trigger{} }

// Notify resuelve los usuarios con alguno de los roles elegibles e inserta una
// notificación por usuario con estado NEW. Sin usuarios elegibles es un no-op,
// no un error.
func (t *Trigger) Notify(
	ctx context.Context,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifType string,
	roles []string,
	payload any,
) error {
	userIDs, err := userRepo.ListIDsByRoles(ctx, roles)
	if err != nil {
		return fmt.Errorf("resolver usuarios por rol: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}
	now := time.Now()
	for _, userID := range userIDs {
		n := &entity.Notification{
			Type:      notifType,
			UserID:    userID,
			Payload:   raw,
			Status:    entity.NotificationStatusNew,
			CreatedAt: now,
		}
		if err := notifRepo.Create(ctx, n); err != nil {
			return fmt.Errorf("crear notificación: %w", err)
		}
	}
	return nil
}

// LowStock dispara la alerta LOW_STOCK para owner y manager.
func (t *Trigger) LowStock(
	ctx context.Context,
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	payload LowStockPayload,
) error {
	return t.Notify(ctx, notifRepo, userRepo, entity.NotificationTypeLowStock, LowStockRoles, payload)
}
