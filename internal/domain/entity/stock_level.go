package entity

import "time"

// StockLevel es la caché materializada de disponibilidad por lote, para
// lecturas rápidas sin recorrer el log de eventos. No es fuente de verdad:
// toda ruta de mutación que afecta la fórmula la actualiza dentro de la misma
// transacción que agrega el evento, y el reporte de conciliación la contrasta
// contra el valor recalculado desde el log.
type StockLevel struct {
	BatchID    string
	ProductID  string
	LocationID string
	Quantity   int64 // disponibilidad cacheada
	UpdatedAt  time.Time
}
