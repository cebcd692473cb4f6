package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// TransferUseCase administra traslados multi-ítem entre ubicaciones y su
// máquina de estados PENDING → IN_TRANSIT → COMPLETED (CANCELLED desde
// PENDING o IN_TRANSIT). Completar descuenta de la disponibilidad derivada del
// lote origen y suma en el destino, sin mutar jamás IntakeQuantity del origen.
type TransferUseCase struct {
	txRunner     TxRunner
	reader       Repos
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, reader Repos, locationRepo repository.LocationRepository, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, reader: reader, locationRepo: locationRepo, log: log}
}

// TransferItemInput una línea del traslado a crear.
type TransferItemInput struct {
	ProductID     string
	SourceBatchID string
	Quantity      int64 // > 0
}

// CreateTransferInput entrada para crear un traslado.
type CreateTransferInput struct {
	FromLocationID string
	ToLocationID   string
	Items          []TransferItemInput
	CreatedBy      string
}

// Create valida y registra un traslado en PENDING: destino ≠ origen, sin
// producto duplicado, cantidades > 0, cada lote origen del producto y la
// ubicación indicados. Copia costo y proveedor del lote origen a cada ítem
// (snapshot para estabilidad de auditoría).
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransferInput) (*entity.Transfer, error) {
	if input.FromLocationID == "" || input.ToLocationID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.FromLocationID == input.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == "" || item.SourceBatchID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if seen[item.ProductID] {
			return nil, domain.ErrDuplicate
		}
		seen[item.ProductID] = true
	}

	from, err := uc.locationRepo.GetByID(input.FromLocationID)
	if err != nil || from == nil {
		return nil, domain.ErrNotFound
	}
	to, err := uc.locationRepo.GetByID(input.ToLocationID)
	if err != nil || to == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:             uuid.New().String(),
		ReferenceCode:  newReferenceCode(),
		FromLocationID: input.FromLocationID,
		ToLocationID:   input.ToLocationID,
		Type:           entity.TransferTypeFor(from.Kind, to.Kind),
		Status:         entity.TransferStatusPending,
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		for _, item := range input.Items {
			batch, err := r.Batches.GetByID(item.SourceBatchID)
			if err != nil {
				return err
			}
			if batch == nil {
				return domain.ErrNotFound
			}
			if batch.ProductID != item.ProductID || batch.LocationID != input.FromLocationID {
				return domain.ErrInvalidInput
			}
			transfer.Items = append(transfer.Items, &entity.TransferItem{
				ID:            uuid.New().String(),
				TransferID:    transfer.ID,
				ProductID:     item.ProductID,
				SourceBatchID: item.SourceBatchID,
				Quantity:      item.Quantity,
				UnitCost:      batch.UnitCost,
				SupplierID:    batch.SupplierID,
				CreatedAt:     now,
			})
		}
		if err := r.Transfers.Create(transfer); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityTransfer, transfer.ID, "",
			entity.AuditActionTransferCreated, input.CreatedBy,
			"", entity.TransferStatusPending,
			fmt.Sprintf("ref=%s items=%d %s→%s", transfer.ReferenceCode, len(transfer.Items), input.FromLocationID, input.ToLocationID), now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer_id", transfer.ID).
		Str("ref", transfer.ReferenceCode).
		Int("items", len(transfer.Items)).
		Msg("traslado creado")
	return transfer, nil
}

// Dispatch pasa un traslado de PENDING a IN_TRANSIT (mercancía en camino).
func (uc *TransferUseCase) Dispatch(ctx context.Context, id, actor string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r Repos) error {
		transfer, err := r.Transfers.GetForUpdate(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransition(entity.TransferStatusInTransit) {
			return &domain.InvalidStateTransitionError{Entity: entity.AuditEntityTransfer, ID: id, From: transfer.Status, To: entity.TransferStatusInTransit}
		}
		before := transfer.Status
		transfer.Status = entity.TransferStatusInTransit
		transfer.UpdatedAt = time.Now()
		if err := r.Transfers.UpdateStatus(transfer); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityTransfer, id, "",
			entity.AuditActionDispatched, actor, before, entity.TransferStatusInTransit, "", transfer.UpdatedAt)
	})
}

// Complete compromete un traslado IN_TRANSIT como unidad atómica:
//
//  1. Bloquea los lotes origen en orden ascendente de ID (evita deadlocks
//     entre traslados concurrentes con productos en común).
//  2. Re-deriva la disponibilidad de cada lote; si algún ítem no alcanza,
//     aborta todo con InsufficientAvailabilityError y desglose completo —
//     no hay completación parcial.
//  3. Registra la salida contra cada lote origen (sin tocar su intake) y suma
//     en destino: evento de entrada si ya existe lote del producto, o lote
//     nuevo con intake igual a lo trasladado copiando costo y proveedor.
//  4. Audita cada ítem y el traslado completo; deja el estado en COMPLETED.
//
// Un fallo en cualquier punto revierte todo el intento.
func (uc *TransferUseCase) Complete(ctx context.Context, id, actor string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		transfer, err := r.Transfers.GetForUpdate(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransition(entity.TransferStatusCompleted) {
			return &domain.InvalidStateTransitionError{Entity: entity.AuditEntityTransfer, ID: id, From: transfer.Status, To: entity.TransferStatusCompleted}
		}

		// Bloqueo de lotes origen en orden global consistente (ID ascendente).
		requested := make(map[string]int64, len(transfer.Items))
		for _, item := range transfer.Items {
			requested[item.SourceBatchID] += item.Quantity
		}
		batchIDs := make([]string, 0, len(requested))
		for batchID := range requested {
			batchIDs = append(batchIDs, batchID)
		}
		sort.Strings(batchIDs)
		sources := make(map[string]*entity.StockBatch, len(batchIDs))
		for _, batchID := range batchIDs {
			batch, err := r.Batches.GetForUpdate(batchID)
			if err != nil {
				return err
			}
			if batch == nil {
				return domain.ErrNotFound
			}
			sources[batchID] = batch
		}

		// Verificación del guardián bajo los bloqueos ya adquiridos.
		for _, batchID := range batchIDs {
			if _, err := ensureAvailable(r, sources[batchID], requested[batchID]); err != nil {
				return err
			}
		}

		now := time.Now()
		before := transfer.Status
		transfer.Status = entity.TransferStatusCompleted
		transfer.CompletedAt = &now
		transfer.UpdatedAt = now
		// El estado pasa primero a COMPLETED para que las sumas de salida y
		// entrada del log incluyan este traslado al refrescar las cachés.
		if err := r.Transfers.UpdateStatus(transfer); err != nil {
			return err
		}

		for _, item := range transfer.Items {
			source := sources[item.SourceBatchID]
			dest, err := r.Batches.FindActiveByProductAndLocation(item.ProductID, transfer.ToLocationID)
			if err != nil {
				return err
			}
			destCreated := dest == nil
			if destCreated {
				dest = &entity.StockBatch{
					ID:             uuid.New().String(),
					ProductID:      item.ProductID,
					LocationID:     transfer.ToLocationID,
					IntakeQuantity: item.Quantity,
					IntakeAt:       now,
					UnitCost:       item.UnitCost,
					SupplierID:     item.SupplierID,
					Referenced:     true, // su intake nace de este traslado; inmutable desde ya
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := r.Batches.Create(dest); err != nil {
					return err
				}
			} else {
				if err := r.Batches.MarkReferenced(dest.ID, now); err != nil {
					return err
				}
			}
			if err := r.Transfers.SetItemDestination(item.ID, dest.ID, destCreated); err != nil {
				return err
			}
			item.DestBatchID = dest.ID
			item.DestBatchCreated = destCreated

			if err := r.Batches.MarkReferenced(source.ID, now); err != nil {
				return err
			}
			if err := refreshLevel(r, source, now); err != nil {
				return err
			}
			if err := refreshLevel(r, dest, now); err != nil {
				return err
			}
			if err := appendAudit(r, entity.AuditEntityTransfer, transfer.ID, source.ID,
				entity.AuditActionTransferItemOut, actor,
				"", "",
				fmt.Sprintf("producto=%s cantidad=%d destino=%s creado=%t", item.ProductID, item.Quantity, dest.ID, destCreated), now); err != nil {
				return err
			}
		}

		return appendAudit(r, entity.AuditEntityTransfer, transfer.ID, "",
			entity.AuditActionCompleted, actor, before, entity.TransferStatusCompleted,
			fmt.Sprintf("ref=%s items=%d", transfer.ReferenceCode, len(transfer.Items)), now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("transfer_id", id).Str("actor", actor).Msg("traslado completado")
	return nil
}

// Cancel cancela un traslado PENDING o IN_TRANSIT sin tocar historial de
// movimientos comprometidos. Idempotente: cancelar un traslado ya CANCELLED
// devuelve el mismo estado terminal sin entrada de auditoría duplicada.
// Cancelar uno COMPLETED sí es error: ese estado es irreversible.
func (uc *TransferUseCase) Cancel(ctx context.Context, id, actor string) (*entity.Transfer, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Transfer
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		transfer, err := r.Transfers.GetForUpdate(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status == entity.TransferStatusCancelled {
			result = transfer
			return nil
		}
		if !transfer.CanTransition(entity.TransferStatusCancelled) {
			return &domain.InvalidStateTransitionError{Entity: entity.AuditEntityTransfer, ID: id, From: transfer.Status, To: entity.TransferStatusCancelled}
		}
		now := time.Now()
		before := transfer.Status
		transfer.Status = entity.TransferStatusCancelled
		transfer.CancelledAt = &now
		transfer.UpdatedAt = now
		if err := r.Transfers.UpdateStatus(transfer); err != nil {
			return err
		}
		result = transfer
		return appendAudit(r, entity.AuditEntityTransfer, id, "",
			entity.AuditActionCancelled, actor, before, entity.TransferStatusCancelled, "", now)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get devuelve un traslado (con ítems) por ID.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*entity.Transfer, error) {
	transfer, err := uc.reader.Transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// newReferenceCode genera un código legible tipo TRF-9F2C41A0.
func newReferenceCode() string {
	return "TRF-" + strings.ToUpper(uuid.New().String()[:8])
}
