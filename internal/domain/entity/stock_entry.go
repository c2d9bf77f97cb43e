package entity

import "time"

// StockEntry representa la cantidad actual de un producto en una bodega.
// Clave única (ProductID, WarehouseID). Se crea implícitamente con el primer
// movimiento de entrada; la cantidad nunca es negativa y solo la muta el
// motor de movimientos (nunca escritura directa).
type StockEntry struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	UpdatedAt   time.Time
}
