package entity

import "time"

// SaleEvent es una venta completada reportada por el subsistema de ventas
// contra un lote. El motor nunca inicia ni muta ventas: solo las consume como
// eventos que decrementan la disponibilidad derivada. Append-only.
type SaleEvent struct {
	ID        string
	BatchID   string
	Quantity  int64  // > 0, se resta en la fórmula
	Reference string // identificador externo de la venta
	SoldAt    time.Time
	CreatedAt time.Time
}
