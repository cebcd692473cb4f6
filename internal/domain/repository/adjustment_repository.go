package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes.
// Los ajustes son append-only en cantidad: solo su estado avanza según la
// máquina de estados; COMPLETED y REJECTED son inmutables.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	// GetForUpdate bloquea la fila del ajuste durante la transición de estado.
	GetForUpdate(id string) (*entity.Adjustment, error)
	UpdateStatus(adjustment *entity.Adjustment) error
	ListByBatch(batchID string) ([]*entity.Adjustment, error)
	// SumCompletedByBatch devuelve la suma con signo de los ajustes COMPLETED
	// contra el lote y cuántos son (un término de la fórmula de disponibilidad).
	SumCompletedByBatch(batchID string) (sum int64, count int, err error)
}
