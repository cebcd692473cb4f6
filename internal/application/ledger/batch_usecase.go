package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// BatchUseCase administra el libro de lotes: creación, edición (solo mientras
// el lote no esté referenciado) y lectura de disponibilidad derivada.
type BatchUseCase struct {
	txRunner     TxRunner
	reader       Repos // repos atados al pool, para lecturas sin transacción
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(txRunner TxRunner, reader Repos, productRepo repository.ProductRepository, locationRepo repository.LocationRepository, log *logger.Logger) *BatchUseCase {
	return &BatchUseCase{
		txRunner:     txRunner,
		reader:       reader,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// CreateBatchInput entrada para registrar la recepción de un lote.
type CreateBatchInput struct {
	ProductID  string
	LocationID string
	Quantity   int64 // >= 0
	UnitCost   decimal.Decimal
	SupplierID string
	IntakeAt   time.Time  // cero = ahora
	ExpiresAt  *time.Time // opcional
	Actor      string
}

// CreateBatch registra la recepción de un lote: valida producto y ubicación,
// persiste el lote, inicializa la caché de disponibilidad y deja entrada de
// auditoría, todo en una transacción.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, input CreateBatchInput) (*entity.StockBatch, error) {
	if input.ProductID == "" || input.LocationID == "" || input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(input.LocationID)
	if err != nil || location == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	intakeAt := input.IntakeAt
	if intakeAt.IsZero() {
		intakeAt = now
	}
	batch := &entity.StockBatch{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		LocationID:     input.LocationID,
		IntakeQuantity: input.Quantity,
		IntakeAt:       intakeAt,
		UnitCost:       input.UnitCost,
		SupplierID:     input.SupplierID,
		ExpiresAt:      input.ExpiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Batches.Create(batch); err != nil {
			return err
		}
		if err := r.Levels.Upsert(&entity.StockLevel{
			BatchID:    batch.ID,
			ProductID:  batch.ProductID,
			LocationID: batch.LocationID,
			Quantity:   batch.IntakeQuantity,
			UpdatedAt:  now,
		}); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityBatch, batch.ID, batch.ID,
			entity.AuditActionBatchCreated, input.Actor,
			"", fmt.Sprintf("intake=%d", batch.IntakeQuantity),
			fmt.Sprintf("producto=%s ubicación=%s", batch.ProductID, batch.LocationID), now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("product_id", batch.ProductID).
		Str("location_id", batch.LocationID).
		Int64("intake", batch.IntakeQuantity).
		Msg("lote registrado")
	return batch, nil
}

// SetIntakeQuantity reescribe la cantidad de ingreso de un lote. Falla con
// ImmutableFieldError si el lote ya está referenciado por cualquier ajuste,
// traslado o venta; si no, actualiza también la caché y audita el cambio.
func (uc *BatchUseCase) SetIntakeQuantity(ctx context.Context, batchID string, quantity int64, actor string) error {
	if batchID == "" || quantity < 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r Repos) error {
		batch, err := r.Batches.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Referenced {
			return &domain.ImmutableFieldError{BatchID: batchID, Field: "intake_quantity"}
		}
		before := batch.IntakeQuantity
		if err := r.Batches.UpdateIntakeQuantity(batchID, quantity, time.Now()); err != nil {
			return err
		}
		batch.IntakeQuantity = quantity
		now := time.Now()
		if err := refreshLevel(r, batch, now); err != nil {
			return err
		}
		return appendAudit(r, entity.AuditEntityBatch, batchID, batchID,
			entity.AuditActionIntakeUpdated, actor,
			fmt.Sprintf("intake=%d", before), fmt.Sprintf("intake=%d", quantity), "", now)
	})
}

// GetBatch devuelve el lote por ID.
func (uc *BatchUseCase) GetBatch(ctx context.Context, batchID string) (*entity.StockBatch, error) {
	batch, err := uc.reader.Batches.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// Availability resultado de una consulta de disponibilidad.
type Availability struct {
	Batch     *entity.StockBatch
	Breakdown domain.AvailabilityBreakdown
	Available int64
}

// GetAvailability recalcula la disponibilidad del lote desde el log de eventos.
// Lectura sin bloqueo: puede ser eventualmente consistente con completaciones
// en vuelo, pero nunca refleja un estado parcial ya que los eventos se
// comprometen de forma atómica.
func (uc *BatchUseCase) GetAvailability(ctx context.Context, batchID string) (*Availability, error) {
	batch, err := uc.reader.Batches.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	breakdown, _, err := availabilityFor(uc.reader, batch)
	if err != nil {
		return nil, err
	}
	return &Availability{Batch: batch, Breakdown: breakdown, Available: breakdown.Available()}, nil
}

// AuditTrail lista la bitácora de un lote, más reciente primero.
func (uc *BatchUseCase) AuditTrail(ctx context.Context, batchID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.reader.Audit.ListByBatch(batchID, limit, offset)
}
