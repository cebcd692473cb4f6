package memory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// TxRunner implementa ledger.TxRunner sobre el almacén en memoria: el mutex
// global serializa las transacciones y una instantánea del estado hace las
// veces de rollback si fn devuelve error.
type TxRunner struct {
	store *Store
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea el ejecutor de transacciones en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn bajo el mutex global con repositorios atados a la
// transacción. Todo o nada: un error de fn restaura la instantánea previa.
func (t *TxRunner) Run(ctx context.Context, fn func(r ledger.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.takeSnapshot()
	if err := fn(newRepos(t.store, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// NewRepos construye repositorios de lectura fuera de transacción; cada
// llamada toma y suelta el mutex por su cuenta.
func NewRepos(store *Store) ledger.Repos {
	return newRepos(store, false)
}

func newRepos(store *Store, inTx bool) ledger.Repos {
	return ledger.Repos{
		Batches:     &BatchRepo{s: store, inTx: inTx},
		Adjustments: &AdjustmentRepo{s: store, inTx: inTx},
		Transfers:   &TransferRepo{s: store, inTx: inTx},
		Sales:       &SaleRepo{s: store, inTx: inTx},
		Levels:      &StockLevelRepo{s: store, inTx: inTx},
		Audit:       &AuditLogRepo{s: store, inTx: inTx},
	}
}
