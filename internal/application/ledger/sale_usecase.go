package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// SaleUseCase ingiere ventas completadas reportadas por el subsistema de
// ventas. El motor nunca inicia ni muta una venta: el evento es un hecho
// externo que decrementa la disponibilidad derivada del lote.
type SaleUseCase struct {
	txRunner TxRunner
	reader   Repos
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, reader Repos, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, reader: reader, log: log}
}

// RecordSaleInput entrada para registrar una venta reportada.
type RecordSaleInput struct {
	BatchID   string
	Quantity  int64 // > 0
	Reference string
	SoldAt    time.Time // cero = ahora
	Actor     string
}

// RecordSale agrega el evento de venta, marca el lote como referenciado y
// refresca la caché, en una transacción. No aplica el guardián de
// disponibilidad: la venta ya ocurrió; si deja el lote en negativo el reporte
// de conciliación lo hará visible y aquí queda un warning.
func (uc *SaleUseCase) RecordSale(ctx context.Context, input RecordSaleInput) (*entity.SaleEvent, error) {
	if input.BatchID == "" || input.Quantity <= 0 || input.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	soldAt := input.SoldAt
	if soldAt.IsZero() {
		soldAt = now
	}
	sale := &entity.SaleEvent{
		ID:        uuid.New().String(),
		BatchID:   input.BatchID,
		Quantity:  input.Quantity,
		Reference: input.Reference,
		SoldAt:    soldAt,
		CreatedAt: now,
	}
	var available int64
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetForUpdate(input.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		if err := r.Batches.MarkReferenced(batch.ID, now); err != nil {
			return err
		}
		if err := refreshLevel(r, batch, now); err != nil {
			return err
		}
		breakdown, _, err := availabilityFor(r, batch)
		if err != nil {
			return err
		}
		available = breakdown.Available()
		return appendAudit(r, entity.AuditEntitySale, sale.ID, batch.ID,
			entity.AuditActionSaleRecorded, input.Actor,
			"", "",
			fmt.Sprintf("cantidad=%d ref=%s", input.Quantity, input.Reference), now)
	})
	if err != nil {
		return nil, err
	}
	if available < 0 {
		uc.log.Warn().
			Str("batch_id", input.BatchID).
			Str("sale_ref", input.Reference).
			Int64("available", available).
			Msg("venta reportada deja disponibilidad negativa; revisar con conciliación")
	}
	return sale, nil
}

// ListByBatch lista las ventas reportadas contra un lote.
func (uc *SaleUseCase) ListByBatch(ctx context.Context, batchID string) ([]*entity.SaleEvent, error) {
	return uc.reader.Sales.ListByBatch(batchID)
}
