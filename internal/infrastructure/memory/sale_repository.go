package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// SaleRepo implementa SaleRepository sobre el almacén en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

// Create agrega un evento de venta.
func (r *SaleRepo) Create(sale *entity.SaleEvent) error {
	defer r.s.enter(r.inTx)()
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if _, ok := r.s.sales[sale.ID]; ok {
		return fmt.Errorf("create sale event %s: %w", sale.ID, domain.ErrDuplicate)
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// ListByBatch lista los eventos de venta contra un lote, más antiguos primero.
func (r *SaleRepo) ListByBatch(batchID string) ([]*entity.SaleEvent, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.SaleEvent
	for _, e := range r.s.sales {
		if e.BatchID == batchID {
			matched = append(matched, cloneSale(e))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SoldAt.Before(matched[j].SoldAt)
	})
	return matched, nil
}

// SumByBatch suma las cantidades vendidas contra el lote.
func (r *SaleRepo) SumByBatch(batchID string) (int64, int, error) {
	defer r.s.enter(r.inTx)()
	var sum int64
	var count int
	for _, e := range r.s.sales {
		if e.BatchID == batchID {
			sum += e.Quantity
			count++
		}
	}
	return sum, count, nil
}
