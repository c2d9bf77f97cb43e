package usecase

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// StockQueryUseCase consulta de solo lectura sobre cantidades actuales.
// Nunca escribe: la mutación de stock es exclusiva del motor de movimientos.
type StockQueryUseCase struct {
	repo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso con un repo atado al pool.
func NewStockQueryUseCase(repo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{repo: repo}
}

// List devuelve las cantidades actuales, opcionalmente filtradas por producto
// y/o bodega (0 = sin filtro).
func (uc *StockQueryUseCase) List(ctx context.Context, productID, warehouseID int64) ([]*entity.StockEntry, error) {
	var pid, wid *int64
	if productID > 0 {
		pid = &productID
	}
	if warehouseID > 0 {
		wid = &warehouseID
	}
	return uc.repo.List(ctx, pid, wid)
}
