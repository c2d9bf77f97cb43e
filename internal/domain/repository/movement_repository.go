package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementFilter filtra el listado del kardex. Los punteros en nil no filtran.
// WarehouseID coincide contra bodega origen o destino.
type MovementFilter struct {
	ProductID   *int64
	WarehouseID *int64
	Type        *string
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia del kardex (append-only).
type MovementRepository interface {
	// Create persiste el movimiento y asigna su ID.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve el movimiento o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
