package sales

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta (solo lectura).
type ReceiptUseCase struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// GetReceiptPDF carga la venta, resuelve nombres de producto y genera el PDF.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, saleID int64) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	items, err := uc.saleRepo.ListItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, sale.WarehouseID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := "producto eliminado"
		if product, err := uc.productRepo.GetByID(ctx, item.ProductID); err == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Discount:    item.Discount.StringFixed(2),
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, warehouse, lines)
}
