package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta solicitada en caja.
type SaleItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // 0 = precio de catálogo
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	WarehouseID int64             `json:"warehouse_id"`
	Items       []SaleItemRequest `json:"items"`
	Discount    decimal.Decimal   `json:"discount"`
	PaymentType string            `json:"payment_type"` // CASH, CARD, TRANSFER
}

// SaleResponse respuesta de crear una venta.
type SaleResponse struct {
	SaleID int64           `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

// ReturnSaleResponse respuesta de devolver una venta.
type ReturnSaleResponse struct {
	SaleID int64  `json:"sale_id"`
	Status string `json:"status"`
}
