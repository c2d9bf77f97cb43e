package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

func validInput(movType string) inventory.MovementInput {
	in := inventory.MovementInput{
		ProductID: 1,
		Type:      movType,
		Quantity:  5,
		UserID:    9,
	}
	switch movType {
	case "IN", "RETURN", "ADJUST":
		in.WarehouseToID = 2
	case "OUT", "SALE":
		in.WarehouseFromID = 2
	case "TRANSFER":
		in.WarehouseFromID = 2
		in.WarehouseToID = 3
	}
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de reglas por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_TiposValidos(t *testing.T) {
	for _, movType := range []string{"IN", "OUT", "TRANSFER", "SALE", "RETURN", "ADJUST"} {
		t.Run(movType, func(t *testing.T) {
			cmd, err := inventory.ValidateMovement(validInput(movType))
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, movType, cmd.Type)
		})
	}
}

func TestValidateMovement_BodegaRequeridaPorTipo(t *testing.T) {
	cases := []struct {
		movType string
		field   string
	}{
		{"IN", "warehouse_to_id"},
		{"RETURN", "warehouse_to_id"},
		{"ADJUST", "warehouse_to_id"},
		{"OUT", "warehouse_from_id"},
		{"SALE", "warehouse_from_id"},
	}
	for _, tc := range cases {
		t.Run(tc.movType, func(t *testing.T) {
			in := inventory.MovementInput{ProductID: 1, Type: tc.movType, Quantity: 5, UserID: 9}
			_, err := inventory.ValidateMovement(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput),
				"la falta de bodega debe ser un error de validación")
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestValidateMovement_TransferRequiereAmbasBodegas(t *testing.T) {
	in := validInput("TRANSFER")
	in.WarehouseToID = 0
	_, err := inventory.ValidateMovement(in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	in = validInput("TRANSFER")
	in.WarehouseFromID = 0
	_, err = inventory.ValidateMovement(in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateMovement_TransferMismaBodega(t *testing.T) {
	in := validInput("TRANSFER")
	in.WarehouseToID = in.WarehouseFromID
	_, err := inventory.ValidateMovement(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput),
		"origen y destino iguales debe rechazarse")
}

func TestValidateMovement_TipoDesconocido(t *testing.T) {
	in := validInput("IN")
	in.Type = "LOAN"
	_, err := inventory.ValidateMovement(in)
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restricciones universales
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_CantidadNoPositiva(t *testing.T) {
	for _, q := range []int64{0, -3} {
		in := validInput("IN")
		in.Quantity = q
		_, err := inventory.ValidateMovement(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput),
			"cantidad %d debe rechazarse", q)
	}
}

func TestValidateMovement_IDsNoPositivos(t *testing.T) {
	in := validInput("IN")
	in.ProductID = 0
	_, err := inventory.ValidateMovement(in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	in = validInput("IN")
	in.UserID = -1
	_, err = inventory.ValidateMovement(in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Las bodegas que el tipo no usa se normalizan a nil aunque vengan en el input.
func TestValidateMovement_NormalizaBodegasNoUsadas(t *testing.T) {
	in := validInput("IN")
	in.WarehouseFromID = 7 // IN no usa origen
	cmd, err := inventory.ValidateMovement(in)
	require.NoError(t, err)
	assert.Nil(t, cmd.From)
	require.NotNil(t, cmd.To)
	assert.Equal(t, int64(2), *cmd.To)

	in = validInput("OUT")
	in.WarehouseToID = 7 // OUT no usa destino
	cmd, err = inventory.ValidateMovement(in)
	require.NoError(t, err)
	assert.Nil(t, cmd.To)
	require.NotNil(t, cmd.From)
}
