package sales

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ReturnSaleUseCase devuelve una venta completa: reingresa cada ítem al stock
// con un movimiento RETURN y marca la venta como RETURNED, en una transacción.
// La devolución es total (el modelo no contempla devoluciones parciales) y el
// estado RETURNED es terminal.
type ReturnSaleUseCase struct {
	txRunner SaleTxRunner
	applier  MovementApplier
}

// NewReturnSaleUseCase construye el caso de uso.
func NewReturnSaleUseCase(txRunner SaleTxRunner, applier MovementApplier) *ReturnSaleUseCase {
	return &ReturnSaleUseCase{txRunner: txRunner, applier: applier}
}

// ReturnSaleInput entrada para devolver una venta. WarehouseID en 0 reingresa
// a la bodega original de la venta.
type ReturnSaleInput struct {
	SaleID      int64
	WarehouseID int64
	UserID      int64
}

// ReturnSaleResult id y estado final de la venta.
type ReturnSaleResult struct {
	SaleID int64
	Status string
}

// ReturnSale bloquea la venta, valida su estado y reingresa los ítems.
func (uc *ReturnSaleUseCase) ReturnSale(ctx context.Context, in ReturnSaleInput) (*ReturnSaleResult, error) {
	if in.SaleID <= 0 {
		return nil, domain.Validation("sale_id", "debe ser un entero positivo")
	}
	if in.UserID <= 0 {
		return nil, domain.Validation("user_id", "debe ser un entero positivo")
	}
	if in.WarehouseID < 0 {
		return nil, domain.Validation("warehouse_id", "no puede ser negativo")
	}

	var result *ReturnSaleResult
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		userRepo repository.UserRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
	) error {
		// El FOR UPDATE sobre la venta serializa devoluciones concurrentes:
		// la segunda ve el estado RETURNED ya commiteado.
		sale, err := saleRepo.GetForUpdate(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if sale.Status == entity.SaleStatusReturned {
			return domain.ErrAlreadyReturned
		}

		items, err := saleRepo.ListItems(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptySale
		}

		warehouseID := in.WarehouseID
		if warehouseID == 0 {
			warehouseID = sale.WarehouseID
		}

		for _, item := range items {
			if _, err := uc.applier.ApplyInTx(
				ctx, movRepo, stockRepo, productRepo, warehouseRepo, userRepo, notifRepo,
				inventory.MovementInput{
					ProductID:     item.ProductID,
					WarehouseToID: warehouseID,
					Type:          entity.MovementTypeRETURN,
					Quantity:      item.Quantity,
					Reason:        "devolución de venta",
					UserID:        in.UserID,
				},
				sale.Reference,
			); err != nil {
				return err
			}
		}

		if err := saleRepo.UpdateStatus(ctx, in.SaleID, entity.SaleStatusReturned); err != nil {
			return err
		}
		result = &ReturnSaleResult{SaleID: in.SaleID, Status: entity.SaleStatusReturned}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
