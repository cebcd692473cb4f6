package entity

import "time"

// Product representa un producto o SKU (registro externo; el catálogo se
// administra fuera del motor, aquí solo se resuelve identidad).
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
