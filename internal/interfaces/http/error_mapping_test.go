package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
)

// statusFor monta una ruta que devuelve el error mapeado y lee el status.
func statusFor(t *testing.T, mapper func(*fiber.Ctx, error) error, err error) int {
	t.Helper()
	app := fiber.New()
	app.Get("/p", func(c *fiber.Ctx) error {
		return mapper(c, err)
	})
	resp, respErr := app.Test(httptest.NewRequest(http.MethodGet, "/p", nil), -1)
	require.NoError(t, respErr)
	defer resp.Body.Close()
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// mapMovementError — cada error del motor llega con su status correcto
// ──────────────────────────────────────────────────────────────────────────────

func TestMapMovementError_NoEncontradoDevuelve404(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"producto", domain.ErrProductNotFound},
		{"stock", domain.ErrStockEntryNotFound},
		{"bodega", &domain.WarehouseNotFoundError{WarehouseID: 7}},
		{"generico", domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, statusFor(t, mapMovementError, tc.err))
		})
	}
}

func TestMapMovementError_Validacion400(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest,
		statusFor(t, mapMovementError, domain.Validation("quantity", "debe ser mayor que cero")))
}

func TestMapMovementError_StockInsuficiente409(t *testing.T) {
	err := &domain.InsufficientStockError{ProductID: 1, WarehouseID: 1, Available: 3, Requested: 5}
	assert.Equal(t, http.StatusConflict, statusFor(t, mapMovementError, err))
}

func TestMapMovementError_Inesperado500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError,
		statusFor(t, mapMovementError, errors.New("se cayó la base")))
}

// ──────────────────────────────────────────────────────────────────────────────
// mapSaleError
// ──────────────────────────────────────────────────────────────────────────────

func TestMapSaleError_NoEncontradoDevuelve404(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"venta", domain.ErrSaleNotFound},
		{"producto", domain.ErrProductNotFound},
		{"bodega", &domain.WarehouseNotFoundError{WarehouseID: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, statusFor(t, mapSaleError, tc.err))
		})
	}
}

func TestMapSaleError_Conflictos409(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(t, mapSaleError, domain.ErrAlreadyReturned))
	assert.Equal(t, http.StatusConflict, statusFor(t, mapSaleError, domain.ErrEmptySale))
	err := &domain.InsufficientStockError{ProductID: 1, WarehouseID: 1, Available: 0, Requested: 2}
	assert.Equal(t, http.StatusConflict, statusFor(t, mapSaleError, err))
}

func TestMapSaleError_Validacion400(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest,
		statusFor(t, mapSaleError, domain.Validation("items", "la venta debe tener al menos un ítem")))
}
