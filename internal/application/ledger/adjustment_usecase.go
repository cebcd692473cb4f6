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

// AdjustmentUseCase administra el diario de ajustes y su máquina de estados
// DRAFT → PENDING → APPROVED → COMPLETED (PENDING → REJECTED como rama
// terminal). Completar un ajuste jamás escribe StockBatch.IntakeQuantity: el
// delta se almacena y entra en la fórmula de disponibilidad en lectura.
type AdjustmentUseCase struct {
	txRunner TxRunner
	reader   Repos
	log      *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, reader Repos, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, reader: reader, log: log}
}

// CreateAdjustmentInput entrada para crear un ajuste contra un lote.
type CreateAdjustmentInput struct {
	BatchID  string
	Type     string // DAMAGE, SHRINKAGE, FOUND, CORRECTION
	Quantity int64  // con signo; coherente con el tipo
	Reason   string
	Status   string // DRAFT (defecto) o PENDING
	Actor    string
}

// Create registra un ajuste en DRAFT o PENDING. Crear no referencia el lote:
// la bandera de inmutabilidad se fija recién al comprometer el evento
// (Complete), que es cuando el delta pasa a existir para el cálculo.
func (uc *AdjustmentUseCase) Create(ctx context.Context, input CreateAdjustmentInput) (*entity.Adjustment, error) {
	if input.BatchID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAdjustmentType(input.Type) || !entity.ValidAdjustmentSign(input.Type, input.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = entity.AdjustmentStatusDraft
	}
	if status != entity.AdjustmentStatusDraft && status != entity.AdjustmentStatusPending {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	adjustment := &entity.Adjustment{
		ID:        uuid.New().String(),
		BatchID:   input.BatchID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetByID(input.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if err := r.Adjustments.Create(adjustment); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityAdjustment, adjustment.ID, input.BatchID,
			entity.AuditActionAdjustmentCreated, input.Actor,
			"", status,
			fmt.Sprintf("tipo=%s cantidad=%d", input.Type, input.Quantity), now)
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// Submit pasa un ajuste de DRAFT a PENDING (lo somete a aprobación).
func (uc *AdjustmentUseCase) Submit(ctx context.Context, id, actor string) error {
	return uc.transition(ctx, id, entity.AdjustmentStatusPending, entity.AuditActionSubmitted, actor, "", nil)
}

// Approve aprueba un ajuste PENDING. Aprobar es una decisión: el delta todavía
// no afecta la disponibilidad hasta Complete (flujo a dos personas).
func (uc *AdjustmentUseCase) Approve(ctx context.Context, id, approver string) error {
	return uc.transition(ctx, id, entity.AdjustmentStatusApproved, entity.AuditActionApproved, approver, "",
		func(a *entity.Adjustment) { a.ApprovedBy = approver })
}

// Reject rechaza un ajuste PENDING (terminal).
func (uc *AdjustmentUseCase) Reject(ctx context.Context, id, approver, reason string) error {
	if reason == "" {
		return domain.ErrInvalidInput
	}
	return uc.transition(ctx, id, entity.AdjustmentStatusRejected, entity.AuditActionRejected, approver, reason,
		func(a *entity.Adjustment) {
			a.RejectedBy = approver
			a.RejectedReason = reason
		})
}

// transition aplica una transición simple de la máquina de estados (sin efecto
// sobre disponibilidad) y la audita. Falla con InvalidStateTransitionError si
// el estado actual no la permite; nunca hace no-op silencioso.
func (uc *AdjustmentUseCase) transition(ctx context.Context, id, to, action, actor, detail string, mutate func(*entity.Adjustment)) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r Repos) error {
		adjustment, err := r.Adjustments.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return domain.ErrNotFound
		}
		if !adjustment.CanTransition(to) {
			return &domain.InvalidStateTransitionError{Entity: entity.AuditEntityAdjustment, ID: id, From: adjustment.Status, To: to}
		}
		before := adjustment.Status
		adjustment.Status = to
		adjustment.UpdatedAt = time.Now()
		if mutate != nil {
			mutate(adjustment)
		}
		if err := r.Adjustments.UpdateStatus(adjustment); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityAdjustment, id, adjustment.BatchID,
			action, actor, before, to, detail, adjustment.UpdatedAt)
	})
}

// Complete compromete un ajuste APPROVED: bajo el bloqueo del lote verifica que
// un delta negativo no deje la disponibilidad bajo cero (guardián de
// integridad), marca el lote como referenciado, refresca la caché y audita.
// Todo dentro de una transacción; nada se aplica parcialmente.
func (uc *AdjustmentUseCase) Complete(ctx context.Context, id, actor string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		adjustment, err := r.Adjustments.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return domain.ErrNotFound
		}
		if !adjustment.CanTransition(entity.AdjustmentStatusCompleted) {
			return &domain.InvalidStateTransitionError{Entity: entity.AuditEntityAdjustment, ID: id, From: adjustment.Status, To: entity.AdjustmentStatusCompleted}
		}
		batch, err := r.Batches.GetForUpdate(adjustment.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if adjustment.Quantity < 0 {
			if _, err := ensureAvailable(r, batch, -adjustment.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		before := adjustment.Status
		adjustment.Status = entity.AdjustmentStatusCompleted
		adjustment.CompletedAt = &now
		adjustment.UpdatedAt = now
		if err := r.Adjustments.UpdateStatus(adjustment); err != nil {
			return err
		}
		if err := r.Batches.MarkReferenced(batch.ID, now); err != nil {
			return err
		}
		if err := refreshLevel(r, batch, now); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityAdjustment, id, batch.ID,
			entity.AuditActionCompleted, actor, before, entity.AdjustmentStatusCompleted,
			fmt.Sprintf("delta=%d", adjustment.Quantity), now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("adjustment_id", id).Str("actor", actor).Msg("ajuste completado")
	return nil
}

// Get devuelve un ajuste por ID.
func (uc *AdjustmentUseCase) Get(ctx context.Context, id string) (*entity.Adjustment, error) {
	adjustment, err := uc.reader.Adjustments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	return adjustment, nil
}

// ListByBatch lista los ajustes de un lote.
func (uc *AdjustmentUseCase) ListByBatch(ctx context.Context, batchID string) ([]*entity.Adjustment, error) {
	return uc.reader.Adjustments.ListByBatch(batchID)
}
