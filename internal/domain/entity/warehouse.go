package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeStore   = "store"   // punto de venta
	WarehouseTypeStorage = "storage" // bodega de almacenamiento
)

// Warehouse representa una bodega o sucursal donde se almacena inventario.
type Warehouse struct {
	ID        int64
	Name      string
	Type      string // store, storage
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
