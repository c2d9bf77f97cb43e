package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por producto+bodega.
// Los métodos de escritura se usan únicamente dentro de transacciones del motor
// de movimientos; nada más escribe sobre stock_entries.
type StockRepository interface {
	// Get devuelve la entrada de stock o nil si no existe.
	Get(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve, o nil si no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error)
	// EnsureRow garantiza que exista una fila (cantidad 0) para poder bloquearla.
	EnsureRow(ctx context.Context, productID, warehouseID int64) error
	// AddQuantity suma delta de forma atómica (upsert aditivo) y devuelve la
	// cantidad resultante; crea la fila si no existe.
	AddQuantity(ctx context.Context, productID, warehouseID, delta int64) (int64, error)
	// SetQuantity fija la cantidad de una fila existente (previamente bloqueada).
	SetQuantity(ctx context.Context, productID, warehouseID, quantity int64) error
	// List consulta cantidades actuales; productID/warehouseID en nil no filtran.
	List(ctx context.Context, productID, warehouseID *int64) ([]*entity.StockEntry, error)
}
