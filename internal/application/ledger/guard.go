package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// availabilityFor deriva el desglose de disponibilidad de un lote recorriendo
// el log de eventos (ajustes completados, traslados completados, ventas) con
// los repositorios recibidos. Dentro de TxRunner.Run el desglose queda
// serializado por el bloqueo de fila del lote; fuera, es una lectura suelta
// eventualmente consistente con operaciones bloqueadas en vuelo.
func availabilityFor(r Repos, batch *entity.StockBatch) (domain.AvailabilityBreakdown, int, error) {
	adjSum, adjCount, err := r.Adjustments.SumCompletedByBatch(batch.ID)
	if err != nil {
		return domain.AvailabilityBreakdown{}, 0, err
	}
	outSum, outCount, err := r.Transfers.SumCompletedOutByBatch(batch.ID)
	if err != nil {
		return domain.AvailabilityBreakdown{}, 0, err
	}
	inSum, inCount, err := r.Transfers.SumCompletedInByBatch(batch.ID)
	if err != nil {
		return domain.AvailabilityBreakdown{}, 0, err
	}
	saleSum, saleCount, err := r.Sales.SumByBatch(batch.ID)
	if err != nil {
		return domain.AvailabilityBreakdown{}, 0, err
	}
	b := domain.AvailabilityBreakdown{
		RecordedIntake: batch.IntakeQuantity,
		AdjustmentSum:  adjSum,
		TransferOutSum: outSum,
		TransferInSum:  inSum,
		SaleSum:        saleSum,
	}
	return b, adjCount + outCount + inCount + saleCount, nil
}

// ensureAvailable es la verificación del guardián de integridad: rechaza con
// InsufficientAvailabilityError (desglose completo incluido) si la cantidad
// solicitada excede la disponibilidad derivada. Debe invocarse bajo el mismo
// bloqueo de lote que la mutación que protege, para evitar la carrera
// verificar-luego-actuar.
func ensureAvailable(r Repos, batch *entity.StockBatch, requested int64) (domain.AvailabilityBreakdown, error) {
	breakdown, _, err := availabilityFor(r, batch)
	if err != nil {
		return domain.AvailabilityBreakdown{}, err
	}
	if breakdown.Available() < requested {
		return breakdown, &domain.InsufficientAvailabilityError{
			BatchID:   batch.ID,
			ProductID: batch.ProductID,
			Breakdown: breakdown,
			Requested: requested,
		}
	}
	return breakdown, nil
}

// refreshLevel recalcula la disponibilidad del lote desde el log y actualiza la
// caché materializada dentro de la transacción en curso. Toda ruta de mutación
// que afecta la fórmula debe pasar por aquí antes del commit.
func refreshLevel(r Repos, batch *entity.StockBatch, now time.Time) error {
	breakdown, _, err := availabilityFor(r, batch)
	if err != nil {
		return err
	}
	return r.Levels.Upsert(&entity.StockLevel{
		BatchID:    batch.ID,
		ProductID:  batch.ProductID,
		LocationID: batch.LocationID,
		Quantity:   breakdown.Available(),
		UpdatedAt:  now,
	})
}

// appendAudit agrega una entrada a la bitácora dentro de la transacción en curso.
func appendAudit(r Repos, entityType, entityID, batchID, action, actor, before, after, detail string, now time.Time) error {
	return r.Audit.Append(&entity.AuditLogEntry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		BatchID:    batchID,
		Action:     action,
		Actor:      actor,
		Before:     before,
		After:      after,
		Detail:     detail,
		CreatedAt:  now,
	})
}
