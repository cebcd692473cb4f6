package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// BatchRepo implementa BatchRepository sobre el almacén en memoria.
type BatchRepo struct {
	s    *Store
	inTx bool
}

var _ repository.BatchRepository = (*BatchRepo)(nil)

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.StockBatch) error {
	defer r.s.enter(r.inTx)()
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if _, ok := r.s.batches[batch.ID]; ok {
		return fmt.Errorf("create batch %s: %w", batch.ID, domain.ErrDuplicate)
	}
	r.s.batches[batch.ID] = cloneBatch(batch)
	return nil
}

// GetByID devuelve el lote o (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	defer r.s.enter(r.inTx)()
	batch, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return cloneBatch(batch), nil
}

// GetForUpdate equivale a GetByID: el mutex global ya serializa la transacción.
func (r *BatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	return r.GetByID(id)
}

// UpdateIntakeQuantity reescribe la cantidad de ingreso.
func (r *BatchRepo) UpdateIntakeQuantity(id string, quantity int64, at time.Time) error {
	defer r.s.enter(r.inTx)()
	batch, ok := r.s.batches[id]
	if !ok {
		return fmt.Errorf("update intake quantity: lote %s: %w", id, domain.ErrNotFound)
	}
	batch.IntakeQuantity = quantity
	batch.UpdatedAt = at
	return nil
}

// MarkReferenced fija la bandera de inmutabilidad del lote.
func (r *BatchRepo) MarkReferenced(id string, at time.Time) error {
	defer r.s.enter(r.inTx)()
	batch, ok := r.s.batches[id]
	if !ok {
		return fmt.Errorf("mark referenced: lote %s: %w", id, domain.ErrNotFound)
	}
	batch.Referenced = true
	batch.UpdatedAt = at
	return nil
}

// FindActiveByProductAndLocation localiza el lote más reciente de un producto
// en una ubicación.
func (r *BatchRepo) FindActiveByProductAndLocation(productID, locationID string) (*entity.StockBatch, error) {
	defer r.s.enter(r.inTx)()
	var latest *entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID != productID || b.LocationID != locationID {
			continue
		}
		if latest == nil || b.IntakeAt.After(latest.IntakeAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneBatch(latest), nil
}

// ListByLocation lista lotes de una ubicación, más recientes primero.
func (r *BatchRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockBatch, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.LocationID == locationID {
			matched = append(matched, cloneBatch(b))
		}
	}
	sortBatchesNewest(matched)
	return page(matched, limit, offset), nil
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
