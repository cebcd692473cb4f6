package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// StockLevelRepository define el puerto para la caché materializada de
// disponibilidad por lote. Se actualiza dentro de la misma transacción que
// compromete el evento subyacente; una caché desfasada entre procesos es un
// bug de correctitud, no un trade-off aceptable.
type StockLevelRepository interface {
	Get(batchID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.StockLevel, error)
}
