package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, location_id, intake_quantity, intake_at, unit_cost, supplier_id, expires_at, referenced, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.StockBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	supplierID := (*string)(nil)
	if batch.SupplierID != "" {
		supplierID = &batch.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.LocationID, batch.IntakeQuantity, batch.IntakeAt,
		batch.UnitCost, supplierID, batch.ExpiresAt, batch.Referenced, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch")
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE). Punto de
// serialización de completaciones concurrentes contra el mismo lote.
func (r *BatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch for update")
}

// UpdateIntakeQuantity reescribe la cantidad de ingreso. El caso de uso ya
// validó la inmutabilidad bajo el bloqueo de la fila.
func (r *BatchRepo) UpdateIntakeQuantity(id string, quantity int64, at time.Time) error {
	query := `UPDATE stock_batches SET intake_quantity = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, at)
	if err != nil {
		return fmt.Errorf("update intake quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkReferenced fija la bandera de inmutabilidad del lote.
func (r *BatchRepo) MarkReferenced(id string, at time.Time) error {
	query := `UPDATE stock_batches SET referenced = TRUE, updated_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark referenced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindActiveByProductAndLocation localiza el lote más reciente de un producto
// en una ubicación (destino de traslados entrantes).
func (r *BatchRepo) FindActiveByProductAndLocation(productID, locationID string) (*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM stock_batches
		WHERE product_id = $1 AND location_id = $2
		ORDER BY intake_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, locationID), "find batch by product and location")
}

// ListByLocation lista lotes de una ubicación, más recientes primero.
func (r *BatchRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM stock_batches
		WHERE location_id = $1 ORDER BY intake_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, batch)
	}
	return list, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row, op string) (*entity.StockBatch, error) {
	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return batch, nil
}

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	var supplierID *string
	if err := row.Scan(
		&b.ID, &b.ProductID, &b.LocationID, &b.IntakeQuantity, &b.IntakeAt,
		&b.UnitCost, &supplierID, &b.ExpiresAt, &b.Referenced, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if supplierID != nil {
		b.SupplierID = *supplierID
	}
	return &b, nil
}
