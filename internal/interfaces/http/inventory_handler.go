package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del kardex y el stock (protegido).
type InventoryHandler struct {
	apply *inventory.ApplyMovementUseCase
	list  *inventory.ListMovementsUseCase
	stock *usecase.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(apply *inventory.ApplyMovementUseCase, list *inventory.ListMovementsUseCase, stock *usecase.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{apply: apply, list: list, stock: stock}
}

// mapMovementError traduce errores de dominio a respuestas HTTP. Los errores
// tipados (InsufficientStockError, ValidationError) envuelven sus centinelas,
// por eso errors.Is y no comparación directa.
func mapMovementError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, warehouse_from_id/warehouse_to_id según el tipo"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.apply.Apply(c.Context(), inventory.MovementInput{
		ProductID:       in.ProductID,
		WarehouseFromID: in.WarehouseFromID,
		WarehouseToID:   in.WarehouseToID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		UserID:          userID,
	})
	if err != nil {
		return mapMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Movement:          dto.MovementToDTO(result.Movement),
		ResultingQuantity: result.ResultingQuantity,
	})
}

// ListMovements godoc
// @Summary      Consultar el kardex
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  int     false  "Filtrar por producto"
// @Param        warehouse_id  query  int     false  "Filtrar por bodega (origen o destino)"
// @Param        type          query  string  false  "IN, OUT, TRANSFER, SALE, RETURN, ADJUST"
// @Param        date_from     query  string  false  "RFC3339"
// @Param        date_to       query  string  false  "RFC3339"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q := inventory.ListMovementsQuery{
		ProductID:   int64(c.QueryInt("product_id", 0)),
		WarehouseID: int64(c.QueryInt("warehouse_id", 0)),
		Type:        c.Query("type"),
		Limit:       c.QueryInt("limit", 0),
		Offset:      c.QueryInt("offset", 0),
	}
	if raw := c.Query("date_from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from debe ser RFC3339"})
		}
		q.DateFrom = &ts
	}
	if raw := c.Query("date_to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to debe ser RFC3339"})
		}
		q.DateTo = &ts
	}
	movements, err := h.list.List(c.Context(), q)
	if err != nil {
		return mapMovementError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementToDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// GetStock godoc
// @Summary      Consultar stock actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  int  false  "Filtrar por producto"
// @Param        warehouse_id  query  int  false  "Filtrar por bodega"
// @Success      200  {array}  dto.StockEntryDTO
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	entries, err := h.stock.List(c.Context(),
		int64(c.QueryInt("product_id", 0)),
		int64(c.QueryInt("warehouse_id", 0)),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockEntryDTO{
			ProductID:   e.ProductID,
			WarehouseID: e.WarehouseID,
			Quantity:    e.Quantity,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}
