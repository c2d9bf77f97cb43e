package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	// MarkRead marca como leída una notificación del usuario; false si no existe.
	MarkRead(ctx context.Context, id, userID int64, readAt time.Time) (bool, error)
}
