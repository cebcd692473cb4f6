package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote recibido de un producto en una ubicación.
// IntakeQuantity es la fuente de verdad de "lo que se recibió": se fija al crear
// el lote y queda permanentemente inmutable en cuanto cualquier ajuste, traslado
// o venta referencia el lote (Referenced = true). La cantidad disponible nunca
// se guarda aquí; se deriva del historial de eventos.
type StockBatch struct {
	ID             string
	ProductID      string
	LocationID     string
	IntakeQuantity int64 // >= 0, se escribe una sola vez
	IntakeAt       time.Time
	UnitCost       decimal.Decimal
	SupplierID     string
	ExpiresAt      *time.Time // opcional
	Referenced     bool       // true desde el primer evento comprometido contra el lote
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
