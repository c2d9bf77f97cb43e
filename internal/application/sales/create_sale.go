package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// CreateSaleUseCase crea una venta POS y descuenta el inventario en una sola
// transacción: o se persiste todo (venta, ítems, movimientos SALE, stock) o
// nada.
type CreateSaleUseCase struct {
	txRunner SaleTxRunner
	applier  MovementApplier
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner SaleTxRunner, applier MovementApplier) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, applier: applier}
}

// SaleItemInput es una línea solicitada en caja.
type SaleItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal // 0 = usar precio de catálogo
	Discount  decimal.Decimal // descuento por línea
}

// CreateSaleInput entrada para crear una venta.
type CreateSaleInput struct {
	CashierID   int64
	WarehouseID int64
	Items       []SaleItemInput
	Discount    decimal.Decimal // descuento global
	PaymentType string
}

// CreateSaleResult id y total de la venta creada.
type CreateSaleResult struct {
	SaleID int64
	Total  decimal.Decimal
}

// CreateSale valida la solicitud, verifica disponibilidad de todos los ítems
// bajo bloqueo de fila, inserta venta e ítems y registra un movimiento SALE
// por ítem dentro de la misma transacción. Si cualquier ítem no tiene stock
// suficiente no se persiste nada, aunque el resto alcanzara.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*CreateSaleResult, error) {
	if in.CashierID <= 0 {
		return nil, domain.Validation("cashier_id", "debe ser un entero positivo")
	}
	if in.WarehouseID <= 0 {
		return nil, domain.Validation("warehouse_id", "debe ser un entero positivo")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("items", "la venta debe tener al menos un ítem")
	}
	for _, item := range in.Items {
		if item.ProductID <= 0 {
			return nil, domain.Validation("items.product_id", "debe ser un entero positivo")
		}
		if item.Quantity <= 0 {
			return nil, domain.Validation("items.quantity", "debe ser mayor que cero")
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return nil, domain.Validation("items.unit_price", "precio y descuento no pueden ser negativos")
		}
	}
	if in.Discount.IsNegative() {
		return nil, domain.Validation("discount", "no puede ser negativo")
	}
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = entity.PaymentTypeCash
	}
	switch paymentType {
	case entity.PaymentTypeCash, entity.PaymentTypeCard, entity.PaymentTypeTransfer:
	default:
		return nil, domain.Validation("payment_type", "debe ser CASH, CARD o TRANSFER")
	}

	var result *CreateSaleResult
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		userRepo repository.UserRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
	) error {
		ok, err := warehouseRepo.Exists(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.WarehouseNotFoundError{WarehouseID: in.WarehouseID}
		}

		// Pre-chequeo de disponibilidad bajo FOR UPDATE: los bloqueos se
		// sostienen hasta el commit, así que nadie puede quitarnos stock entre
		// la verificación y el descuento.
		productsByID := make(map[int64]*entity.Product, len(in.Items))
		for _, item := range in.Items {
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			productsByID[item.ProductID] = product

			entry, err := stockRepo.GetForUpdate(ctx, item.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			var available int64
			if entry != nil {
				available = entry.Quantity
			}
			if available < item.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					WarehouseID: in.WarehouseID,
					Available:   available,
					Requested:   item.Quantity,
				}
			}
		}

		// Total = sum((precio - descuento línea) * cantidad) - descuento global,
		// con piso en cero.
		saleItems := make([]*entity.SaleItem, 0, len(in.Items))
		total := decimal.Zero
		for _, item := range in.Items {
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = productsByID[item.ProductID].Price
			}
			saleItem := &entity.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Discount:  item.Discount,
			}
			saleItems = append(saleItems, saleItem)
			total = total.Add(saleItem.Subtotal())
		}
		total = total.Sub(in.Discount)
		if total.IsNegative() {
			total = decimal.Zero
		}

		sale := &entity.Sale{
			Reference:   uuid.New().String(),
			CashierID:   in.CashierID,
			WarehouseID: in.WarehouseID,
			Total:       total,
			Discount:    in.Discount,
			PaymentType: paymentType,
			Status:      entity.SaleStatusCompleted,
			CreatedAt:   time.Now(),
		}
		if err := saleRepo.Create(ctx, sale, saleItems); err != nil {
			return err
		}

		// Un movimiento SALE por ítem: descuento de stock, fila de kardex y
		// chequeo de stock bajo, todo en esta misma transacción.
		for _, item := range saleItems {
			if _, err := uc.applier.ApplyInTx(
				ctx, movRepo, stockRepo, productRepo, warehouseRepo, userRepo, notifRepo,
				inventory.MovementInput{
					ProductID:       item.ProductID,
					WarehouseFromID: in.WarehouseID,
					Type:            entity.MovementTypeSALE,
					Quantity:        item.Quantity,
					Reason:          "venta POS",
					UserID:          in.CashierID,
				},
				sale.Reference,
			); err != nil {
				return err
			}
		}

		result = &CreateSaleResult{SaleID: sale.ID, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
