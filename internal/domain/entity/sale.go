package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. COMPLETED -> RETURNED es la única transición válida
// y es irreversible.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusReturned  = "RETURNED"
)

// Medios de pago aceptados en caja.
const (
	PaymentTypeCash     = "CASH"
	PaymentTypeCard     = "CARD"
	PaymentTypeTransfer = "TRANSFER"
)

// Sale representa una venta de punto de venta. Se crea en estado COMPLETED
// junto con sus ítems y un movimiento SALE por ítem, todo en una transacción.
type Sale struct {
	ID          int64
	Reference   string // UUID; aparece como Reference en los movimientos de la venta
	CashierID   int64
	WarehouseID int64
	Total       decimal.Decimal // derivado de los ítems menos descuentos
	Discount    decimal.Decimal // descuento global
	PaymentType string
	Status      string // COMPLETED, RETURNED
	CreatedAt   time.Time
}

// SaleItem es una línea de venta, inmutable una vez creada.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento por línea, aplicado al precio unitario
}

// Subtotal devuelve (precio - descuento de línea) * cantidad.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Sub(i.Discount).Mul(decimal.NewFromInt(i.Quantity))
}
