package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los centinelas específicos de "no encontrado" envuelven ErrNotFound para que
// errors.Is(err, ErrNotFound) cubra cualquiera de ellos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = notFound("producto no encontrado")
	ErrWarehouseNotFound  = notFound("bodega no encontrada")
	ErrStockEntryNotFound = notFound("no existe stock del producto en la bodega")
	ErrSaleNotFound       = notFound("venta no encontrada")
	ErrUserNotFound       = notFound("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyReturned    = errors.New("la venta ya fue devuelta")
	ErrEmptySale          = errors.New("la venta no tiene ítems")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// notFoundError es un centinela "no encontrado" con mensaje propio.
type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

func notFound(msg string) error { return &notFoundError{msg: msg} }

// ValidationError describe qué campo del comando es inválido y por qué.
// Envuelve ErrInvalidInput para que errors.Is(err, ErrInvalidInput) funcione.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validation construye un ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError lleva la cantidad disponible y la solicitada para que
// el caller sepa exactamente cuánto faltó. Envuelve ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID   int64
	WarehouseID int64
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %d en bodega %d (disponible %d, solicitado %d)",
		e.ProductID, e.WarehouseID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// WarehouseNotFoundError nombra la bodega faltante: un error de FK en storage
// sería mucho menos accionable para el caller.
type WarehouseNotFoundError struct {
	WarehouseID int64
}

func (e *WarehouseNotFoundError) Error() string {
	return fmt.Sprintf("bodega %d no encontrada", e.WarehouseID)
}

func (e *WarehouseNotFoundError) Unwrap() error { return ErrWarehouseNotFound }
