package ledger

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios del motor atados a una misma fuente
// (pool para lecturas sueltas, o una transacción dentro de TxRunner.Run).
type Repos struct {
	Batches     repository.BatchRepository
	Adjustments repository.AdjustmentRepository
	Transfers   repository.TransferRepository
	Sales       repository.SaleRepository
	Levels      repository.StockLevelRepository
	Audit       repository.AuditLogRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios
// atados a esa tx. Garantiza atomicidad: si fn devuelve error se revierte todo
// lo hecho en el intento; si no, se compromete como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
