package entity

import "time"

// Kinds de ubicación física donde se almacena inventario.
const (
	LocationKindWarehouse  = "WAREHOUSE"
	LocationKindStorefront = "STOREFRONT"
)

// Location representa una bodega o punto de venta (registro externo; el motor
// solo resuelve identidad y kind para validar lotes y traslados).
type Location struct {
	ID        string
	Name      string
	Kind      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
