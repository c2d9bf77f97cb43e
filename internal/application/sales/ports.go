package sales

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesitan los flujos de venta/devolución. Commit si fn
// retorna nil, Rollback en cualquier otro caso.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		userRepo repository.UserRepository,
		notifRepo repository.NotificationRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// MovementApplier es el motor de movimientos visto desde los orquestadores:
// aplica un movimiento compartiendo la transacción del caller.
type MovementApplier interface {
	ApplyInTx(
		ctx context.Context,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		userRepo repository.UserRepository,
		notifRepo repository.NotificationRepository,
		in inventory.MovementInput,
		reference string,
	) (*inventory.MovementResult, error)
}

// ReceiptLine es una línea del recibo (producto ya resuelto).
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   string
	Discount    string
	Subtotal    string
}

// ReceiptGenerator genera la representación PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, warehouse *entity.Warehouse, lines []ReceiptLine) ([]byte, error)
}
