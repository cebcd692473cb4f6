package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// TransferRepo implementa TransferRepository sobre el almacén en memoria.
type TransferRepo struct {
	s    *Store
	inTx bool
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// Create persiste el traslado con todos sus ítems.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	defer r.s.enter(r.inTx)()
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if _, ok := r.s.transfers[transfer.ID]; ok {
		return fmt.Errorf("create transfer %s: %w", transfer.ID, domain.ErrDuplicate)
	}
	for _, item := range transfer.Items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.TransferID = transfer.ID
	}
	r.s.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

// GetByID devuelve el traslado con ítems, o (nil, nil) si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	defer r.s.enter(r.inTx)()
	transfer, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(transfer), nil
}

// GetForUpdate equivale a GetByID: el mutex global ya serializa la transacción.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

// UpdateStatus persiste la transición de estado y sus marcas de tiempo.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	defer r.s.enter(r.inTx)()
	stored, ok := r.s.transfers[transfer.ID]
	if !ok {
		return fmt.Errorf("update transfer status: traslado %s: %w", transfer.ID, domain.ErrNotFound)
	}
	stored.Status = transfer.Status
	stored.CompletedAt = transfer.CompletedAt
	stored.CancelledAt = transfer.CancelledAt
	stored.UpdatedAt = transfer.UpdatedAt
	return nil
}

// SetItemDestination fija el lote destino de un ítem al completar el traslado.
func (r *TransferRepo) SetItemDestination(itemID, destBatchID string, destCreated bool) error {
	defer r.s.enter(r.inTx)()
	for _, transfer := range r.s.transfers {
		for _, item := range transfer.Items {
			if item.ID == itemID {
				item.DestBatchID = destBatchID
				item.DestBatchCreated = destCreated
				return nil
			}
		}
	}
	return fmt.Errorf("set item destination: ítem %s: %w", itemID, domain.ErrNotFound)
}

// ListByLocation lista traslados con origen o destino en la ubicación,
// más recientes primero.
func (r *TransferRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Transfer, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.Transfer
	for _, t := range r.s.transfers {
		if t.FromLocationID == locationID || t.ToLocationID == locationID {
			matched = append(matched, cloneTransfer(t))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, limit, offset), nil
}

// SumCompletedOutByBatch suma las salidas COMPLETED cuyo lote origen es el dado.
func (r *TransferRepo) SumCompletedOutByBatch(batchID string) (int64, int, error) {
	defer r.s.enter(r.inTx)()
	var sum int64
	var count int
	for _, t := range r.s.transfers {
		if t.Status != entity.TransferStatusCompleted {
			continue
		}
		for _, item := range t.Items {
			if item.SourceBatchID == batchID {
				sum += item.Quantity
				count++
			}
		}
	}
	return sum, count, nil
}

// SumCompletedInByBatch suma las entradas COMPLETED que aterrizaron en el lote
// sin crearlo (los lotes creados por el traslado ya la llevan en su intake).
func (r *TransferRepo) SumCompletedInByBatch(batchID string) (int64, int, error) {
	defer r.s.enter(r.inTx)()
	var sum int64
	var count int
	for _, t := range r.s.transfers {
		if t.Status != entity.TransferStatusCompleted {
			continue
		}
		for _, item := range t.Items {
			if item.DestBatchID == batchID && !item.DestBatchCreated {
				sum += item.Quantity
				count++
			}
		}
	}
	return sum, count, nil
}
