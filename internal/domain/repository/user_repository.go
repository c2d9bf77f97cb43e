package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID devuelve el usuario o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListIDsByRoles devuelve los IDs de usuarios activos con alguno de los roles.
	ListIDsByRoles(ctx context.Context, roles []string) ([]int64, error)
}
