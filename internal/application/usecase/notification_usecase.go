package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// NotificationUseCase lado de lectura de notificaciones: listar las del
// usuario y marcarlas como leídas. La creación es exclusiva del trigger.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListMine lista las notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) ListMine(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead marca una notificación del usuario como leída (status READ).
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID int64) error {
	found, err := uc.repo.MarkRead(ctx, id, userID, time.Now())
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
