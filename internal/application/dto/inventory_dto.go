package dto

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID       int64  `json:"product_id"`
	WarehouseFromID int64  `json:"warehouse_from_id,omitempty"`
	WarehouseToID   int64  `json:"warehouse_to_id,omitempty"`
	Type            string `json:"type"`
	Quantity        int64  `json:"quantity"`
	Reason          string `json:"reason,omitempty"`
}

// MovementDTO una fila del kardex en respuestas.
type MovementDTO struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	Type            string    `json:"type"`
	WarehouseFromID *int64    `json:"warehouse_from_id,omitempty"`
	WarehouseToID   *int64    `json:"warehouse_to_id,omitempty"`
	Quantity        int64     `json:"quantity"`
	Reason          string    `json:"reason,omitempty"`
	Reference       string    `json:"reference,omitempty"`
	CreatedBy       int64     `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// MovementResultResponse respuesta de aplicar un movimiento.
type MovementResultResponse struct {
	Movement          MovementDTO `json:"movement"`
	ResultingQuantity int64       `json:"resulting_quantity"`
}

// StockEntryDTO cantidad actual de un producto en una bodega.
type StockEntryDTO struct {
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementToDTO mapea la entidad a su representación HTTP.
func MovementToDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Type:            m.Type,
		WarehouseFromID: m.WarehouseFromID,
		WarehouseToID:   m.WarehouseToID,
		Quantity:        m.Quantity,
		Reason:          m.Reason,
		Reference:       m.Reference,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}
