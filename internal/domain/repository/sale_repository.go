package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// SaleRepository define el puerto para los eventos de venta reportados por el
// subsistema de ventas. Append-only: el motor nunca inicia ni muta una venta.
type SaleRepository interface {
	Create(sale *entity.SaleEvent) error
	ListByBatch(batchID string) ([]*entity.SaleEvent, error)
	// SumByBatch suma las cantidades vendidas contra el lote y cuántos eventos
	// son (término ventas de la fórmula de disponibilidad).
	SumByBatch(batchID string) (sum int64, count int, err error)
}
