package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/sales"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// SalesHandler maneja ventas POS, devoluciones y recibos (protegido).
type SalesHandler struct {
	create  *sales.CreateSaleUseCase
	ret     *sales.ReturnSaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(create *sales.CreateSaleUseCase, ret *sales.ReturnSaleUseCase, receipt *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{create: create, ret: ret, receipt: receipt}
}

func mapSaleError(c *fiber.Ctx, err error) error {
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
	if errors.Is(err, domain.ErrAlreadyReturned) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Message: "la venta ya fue devuelta"})
	}
	if errors.Is(err, domain.ErrEmptySale) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMPTY_SALE", Message: "la venta no tiene ítems"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Crear venta POS
// @Description  Descuenta stock y registra un movimiento SALE por ítem en una
//
//	sola transacción. Si algún ítem no tiene stock no se persiste nada.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "warehouse_id, items, discount, payment_type"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		})
	}
	result, err := h.create.CreateSale(c.Context(), sales.CreateSaleInput{
		CashierID:   userID,
		WarehouseID: in.WarehouseID,
		Items:       items,
		Discount:    in.Discount,
		PaymentType: in.PaymentType,
	})
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{SaleID: result.SaleID, Total: result.Total})
}

// Return godoc
// @Summary      Devolver una venta completa
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id            path   int  true   "ID de la venta"
// @Param        warehouse_id  query  int  false  "Bodega de reingreso; vacío = la de la venta"
// @Success      200  {object}  dto.ReturnSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/return [post]
func (h *SalesHandler) Return(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID, err := c.ParamsInt("id")
	if err != nil || saleID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser un entero positivo"})
	}
	result, err := h.ret.ReturnSale(c.Context(), sales.ReturnSaleInput{
		SaleID:      int64(saleID),
		WarehouseID: int64(c.QueryInt("warehouse_id", 0)),
		UserID:      userID,
	})
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.JSON(dto.ReturnSaleResponse{SaleID: result.SaleID, Status: result.Status})
}

// Receipt godoc
// @Summary      Recibo PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	saleID, err := c.ParamsInt("id")
	if err != nil || saleID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser un entero positivo"})
	}
	pdfBytes, err := h.receipt.GetReceiptPDF(c.Context(), int64(saleID))
	if err != nil {
		return mapSaleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo-venta-%d.pdf"`, saleID))
	return c.Send(pdfBytes)
}
