package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/notification"
	"github.com/jhoicas/Kardex-api/internal/application/sales"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// fixture arma caja y devoluciones con el motor de movimientos real sobre el
// almacén en memoria: producto 1 a $100, producto 2 a $50, bodega 1.
func fixture(t *testing.T) (*memStore, *sales.CreateSaleUseCase, *sales.ReturnSaleUseCase) {
	t.Helper()
	store := newMemStore()
	store.products[1] = &entity.Product{ID: 1, SKU: "SKU-001", Name: "Café molido", Price: decimal.NewFromInt(100)}
	store.products[2] = &entity.Product{ID: 2, SKU: "SKU-002", Name: "Filtros x40", Price: decimal.NewFromInt(50)}
	store.warehouses[1] = true
	store.warehouses[2] = true

	// ApplyInTx no usa el TxRunner del motor: la tx la aporta el orquestador.
	applier := inventory.NewApplyMovementUseCase(nil, notification.NewTrigger())
	txRunner := &memSaleTxRunner{store}
	return store, sales.NewCreateSaleUseCase(txRunner, applier), sales.NewReturnSaleUseCase(txRunner, applier)
}

// Venta de dos unidades a precio de catálogo: total correcto, stock
// descontado, venta COMPLETED y un movimiento SALE con la referencia.
func TestCreateSale_CasoEsperado(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	result, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 2}},
		PaymentType: entity.PaymentTypeCash,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, decimal.NewFromInt(200).Equal(result.Total), "2 x $100 = $200, got %s", result.Total)
	assert.Equal(t, int64(8), store.stock[stockKey{1, 1}])

	sale := store.sales[result.SaleID]
	require.NotNil(t, sale)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.NotEmpty(t, sale.Reference)

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeSALE, store.movements[0].Type)
	assert.Equal(t, sale.Reference, store.movements[0].Reference)
	assert.Equal(t, int64(12), store.movements[0].CreatedBy)
}

// Descuentos: por línea y global, con piso en cero para el total.
func TestCreateSale_Descuentos(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	result, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items: []sales.SaleItemInput{
			{ProductID: 1, Quantity: 2, Discount: decimal.NewFromInt(10)}, // 2 x (100-10) = 180
		},
		Discount: decimal.NewFromInt(30), // 180 - 30 = 150
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(result.Total), "got %s", result.Total)
}

func TestCreateSale_TotalNuncaNegativo(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	result, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 1}},
		Discount:    decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, result.Total.IsZero(), "el total se trunca en cero, got %s", result.Total)
}

// Si un ítem no tiene stock suficiente no se persiste nada, aunque los demás
// alcanzaran: ni venta, ni ítems, ni movimientos, ni descuento de stock.
func TestCreateSale_Atomicidad(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10
	store.stock[stockKey{2, 1}] = 1

	_, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items: []sales.SaleItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 5}, // solo hay 1
		},
	})

	require.Error(t, err)
	var insufErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufErr)
	assert.Equal(t, int64(2), insufErr.ProductID)
	assert.Equal(t, int64(1), insufErr.Available)

	assert.Equal(t, int64(10), store.stock[stockKey{1, 1}], "el stock del primer ítem no debe cambiar")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
}

// El medio de pago es un conjunto cerrado; vacío → CASH, desconocido → 400.
func TestCreateSale_PaymentType(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	_, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 1}},
		PaymentType: "BITCOIN",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "payment_type", vErr.Field)
	assert.Empty(t, store.sales, "la venta no debe persistirse")

	result, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentTypeCash, store.sales[result.SaleID].PaymentType,
		"sin medio de pago se asume efectivo")
}

func TestCreateSale_SinItems(t *testing.T) {
	_, createUC, _ := fixture(t)

	_, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_BodegaInexistente(t *testing.T) {
	_, createUC, _ := fixture(t)

	_, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 99,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	_, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// El precio explícito en el ítem prevalece sobre el de catálogo.
func TestCreateSale_PrecioExplicito(t *testing.T) {
	store, createUC, _ := fixture(t)
	store.stock[stockKey{1, 1}] = 10

	result, err := createUC.CreateSale(context.Background(), sales.CreateSaleInput{
		CashierID:   12,
		WarehouseID: 1,
		Items:       []sales.SaleItemInput{{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(240).Equal(result.Total), "got %s", result.Total)
}
