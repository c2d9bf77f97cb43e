package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovementTypeIN       = "IN"       // entrada a bodega destino
	MovementTypeOUT      = "OUT"      // salida de bodega origen
	MovementTypeTRANSFER = "TRANSFER" // traslado origen -> destino
	MovementTypeSALE     = "SALE"     // salida por venta POS
	MovementTypeRETURN   = "RETURN"   // entrada por devolución de venta
	MovementTypeADJUST   = "ADJUST"   // fija la cantidad en un valor absoluto
)

// Movement es una fila del kardex: el registro inmutable de cada cambio de stock.
// Es append-only; nunca se actualiza ni se borra. Para ADJUST, Quantity es el
// valor absoluto fijado (no un delta), por lo que la suma de cantidades del
// kardex no reconcilia con el stock actual a través de un ADJUST.
type Movement struct {
	ID              int64
	ProductID       int64
	Type            string // IN, OUT, TRANSFER, SALE, RETURN, ADJUST
	WarehouseFromID *int64 // nil si el tipo no usa bodega origen
	WarehouseToID   *int64 // nil si el tipo no usa bodega destino
	Quantity        int64  // siempre positivo
	Reason          string // motivo opcional (nota de ajuste, venta, etc.)
	Reference       string // agrupa movimientos de una misma operación (ej. ID de venta)
	CreatedBy       int64  // UserID que originó el movimiento
	CreatedAt       time.Time
}

// UsesFrom indica si el tipo descuenta de una bodega origen.
func (m *Movement) UsesFrom() bool {
	return m.Type == MovementTypeOUT || m.Type == MovementTypeSALE || m.Type == MovementTypeTRANSFER
}

// UsesTo indica si el tipo afecta una bodega destino.
func (m *Movement) UsesTo() bool {
	return m.Type == MovementTypeIN || m.Type == MovementTypeRETURN ||
		m.Type == MovementTypeTRANSFER || m.Type == MovementTypeADJUST
}
