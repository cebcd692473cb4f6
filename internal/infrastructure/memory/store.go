// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, para pruebas y arranques sin base de datos. Un solo mutex global
// serializa todo: las transacciones toman una instantánea al entrar y la
// restauran si fn falla, imitando el commit/rollback de postgres.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Store es el estado compartido en memoria.
type Store struct {
	mu          sync.Mutex
	batches     map[string]*entity.StockBatch
	adjustments map[string]*entity.Adjustment
	transfers   map[string]*entity.Transfer
	sales       map[string]*entity.SaleEvent
	levels      map[string]*entity.StockLevel
	audit       []*entity.AuditLogEntry
	products    map[string]*entity.Product
	locations   map[string]*entity.Location
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		batches:     make(map[string]*entity.StockBatch),
		adjustments: make(map[string]*entity.Adjustment),
		transfers:   make(map[string]*entity.Transfer),
		sales:       make(map[string]*entity.SaleEvent),
		levels:      make(map[string]*entity.StockLevel),
		products:    make(map[string]*entity.Product),
		locations:   make(map[string]*entity.Location),
	}
}

// enter toma el mutex salvo que la llamada venga de dentro de una transacción
// (que ya lo sostiene). Devuelve la función de salida correspondiente.
func (s *Store) enter(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot copia profunda de todo el estado, tomada con el mutex sostenido.
type snapshot struct {
	batches     map[string]*entity.StockBatch
	adjustments map[string]*entity.Adjustment
	transfers   map[string]*entity.Transfer
	sales       map[string]*entity.SaleEvent
	levels      map[string]*entity.StockLevel
	audit       []*entity.AuditLogEntry
	products    map[string]*entity.Product
	locations   map[string]*entity.Location
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		batches:     make(map[string]*entity.StockBatch, len(s.batches)),
		adjustments: make(map[string]*entity.Adjustment, len(s.adjustments)),
		transfers:   make(map[string]*entity.Transfer, len(s.transfers)),
		sales:       make(map[string]*entity.SaleEvent, len(s.sales)),
		levels:      make(map[string]*entity.StockLevel, len(s.levels)),
		audit:       make([]*entity.AuditLogEntry, len(s.audit)),
		products:    make(map[string]*entity.Product, len(s.products)),
		locations:   make(map[string]*entity.Location, len(s.locations)),
	}
	for id, b := range s.batches {
		snap.batches[id] = cloneBatch(b)
	}
	for id, a := range s.adjustments {
		snap.adjustments[id] = cloneAdjustment(a)
	}
	for id, t := range s.transfers {
		snap.transfers[id] = cloneTransfer(t)
	}
	for id, e := range s.sales {
		snap.sales[id] = cloneSale(e)
	}
	for id, l := range s.levels {
		snap.levels[id] = cloneLevel(l)
	}
	copy(snap.audit, s.audit)
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, l := range s.locations {
		cl := *l
		snap.locations[id] = &cl
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.batches = snap.batches
	s.adjustments = snap.adjustments
	s.transfers = snap.transfers
	s.sales = snap.sales
	s.levels = snap.levels
	s.audit = snap.audit
	s.products = snap.products
	s.locations = snap.locations
}

func cloneBatch(b *entity.StockBatch) *entity.StockBatch {
	c := *b
	if b.ExpiresAt != nil {
		t := *b.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}

func cloneAdjustment(a *entity.Adjustment) *entity.Adjustment {
	c := *a
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.CancelledAt != nil {
		at := *t.CancelledAt
		c.CancelledAt = &at
	}
	c.Items = make([]*entity.TransferItem, len(t.Items))
	for i, item := range t.Items {
		ci := *item
		c.Items[i] = &ci
	}
	return &c
}

func cloneSale(e *entity.SaleEvent) *entity.SaleEvent {
	c := *e
	return &c
}

func cloneLevel(l *entity.StockLevel) *entity.StockLevel {
	c := *l
	return &c
}

// sortBatchesNewest ordena lotes por ingreso descendente; los mapas de Go no
// tienen orden, y las listas expuestas sí lo prometen.
func sortBatchesNewest(batches []*entity.StockBatch) {
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].IntakeAt.After(batches[j].IntakeAt)
	})
}
