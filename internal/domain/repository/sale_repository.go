package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus ítems.
type SaleRepository interface {
	// Create persiste la venta y sus ítems; asigna los IDs.
	Create(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error
	// GetByID devuelve la venta o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (SELECT FOR UPDATE), o nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID int64) ([]*entity.SaleItem, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
