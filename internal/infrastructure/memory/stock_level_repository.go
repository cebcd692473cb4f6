package memory

import (
	"sort"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// StockLevelRepo implementa StockLevelRepository sobre el almacén en memoria.
type StockLevelRepo struct {
	s    *Store
	inTx bool
}

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// Get devuelve la caché del lote o (nil, nil) si aún no existe.
func (r *StockLevelRepo) Get(batchID string) (*entity.StockLevel, error) {
	defer r.s.enter(r.inTx)()
	level, ok := r.s.levels[batchID]
	if !ok {
		return nil, nil
	}
	return cloneLevel(level), nil
}

// Upsert crea o reemplaza la caché de disponibilidad del lote.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	defer r.s.enter(r.inTx)()
	r.s.levels[level.BatchID] = cloneLevel(level)
	return nil
}

// ListByLocation lista las cachés de una ubicación, actualizadas primero.
func (r *StockLevelRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockLevel, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.StockLevel
	for _, l := range r.s.levels {
		if l.LocationID == locationID {
			matched = append(matched, cloneLevel(l))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return page(matched, limit, offset), nil
}
