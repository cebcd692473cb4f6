package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados y sus ítems.
type TransferRepository interface {
	// Create persiste el traslado con todos sus ítems (misma transacción).
	Create(transfer *entity.Transfer) error
	// GetByID devuelve el traslado con ítems cargados.
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila del traslado durante la transición de estado.
	GetForUpdate(id string) (*entity.Transfer, error)
	UpdateStatus(transfer *entity.Transfer) error
	// SetItemDestination fija el lote destino de un ítem al completar el
	// traslado, y si ese lote fue creado por la completación.
	SetItemDestination(itemID, destBatchID string, destCreated bool) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.Transfer, error)
	// SumCompletedOutByBatch suma las cantidades de ítems de traslados COMPLETED
	// cuyo lote origen es el indicado (término salida de la fórmula).
	SumCompletedOutByBatch(batchID string) (sum int64, count int, err error)
	// SumCompletedInByBatch suma las cantidades de ítems de traslados COMPLETED
	// que aterrizaron en el lote indicado sin crearlo (término entrada; los
	// lotes creados por el traslado ya incluyen la cantidad en su intake).
	SumCompletedInByBatch(batchID string) (sum int64, count int, err error)
}
