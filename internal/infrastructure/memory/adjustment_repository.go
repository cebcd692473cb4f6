package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// AdjustmentRepo implementa AdjustmentRepository sobre el almacén en memoria.
type AdjustmentRepo struct {
	s    *Store
	inTx bool
}

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// Create persiste un ajuste nuevo.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	defer r.s.enter(r.inTx)()
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	if _, ok := r.s.adjustments[adjustment.ID]; ok {
		return fmt.Errorf("create adjustment %s: %w", adjustment.ID, domain.ErrDuplicate)
	}
	r.s.adjustments[adjustment.ID] = cloneAdjustment(adjustment)
	return nil
}

// GetByID devuelve el ajuste o (nil, nil) si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	defer r.s.enter(r.inTx)()
	adjustment, ok := r.s.adjustments[id]
	if !ok {
		return nil, nil
	}
	return cloneAdjustment(adjustment), nil
}

// GetForUpdate equivale a GetByID: el mutex global ya serializa la transacción.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.Adjustment, error) {
	return r.GetByID(id)
}

// UpdateStatus persiste la transición de estado y los campos de decisión.
func (r *AdjustmentRepo) UpdateStatus(adjustment *entity.Adjustment) error {
	defer r.s.enter(r.inTx)()
	if _, ok := r.s.adjustments[adjustment.ID]; !ok {
		return fmt.Errorf("update adjustment status: ajuste %s: %w", adjustment.ID, domain.ErrNotFound)
	}
	r.s.adjustments[adjustment.ID] = cloneAdjustment(adjustment)
	return nil
}

// ListByBatch lista los ajustes contra un lote, más antiguos primero.
func (r *AdjustmentRepo) ListByBatch(batchID string) ([]*entity.Adjustment, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.Adjustment
	for _, a := range r.s.adjustments {
		if a.BatchID == batchID {
			matched = append(matched, cloneAdjustment(a))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

// SumCompletedByBatch suma con signo los ajustes COMPLETED contra el lote.
func (r *AdjustmentRepo) SumCompletedByBatch(batchID string) (int64, int, error) {
	defer r.s.enter(r.inTx)()
	var sum int64
	var count int
	for _, a := range r.s.adjustments {
		if a.BatchID == batchID && a.Status == entity.AdjustmentStatusCompleted {
			sum += a.Quantity
			count++
		}
	}
	return sum, count, nil
}
