package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, batch_id, type, quantity, reason, status, approved_by, rejected_by, rejected_reason, completed_at, created_at, updated_at`

// Create persiste un ajuste nuevo.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.BatchID, adjustment.Type, adjustment.Quantity, adjustment.Reason,
		adjustment.Status, nullable(adjustment.ApprovedBy), nullable(adjustment.RejectedBy),
		nullable(adjustment.RejectedReason), adjustment.CompletedAt, adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get adjustment")
}

// GetForUpdate obtiene el ajuste y bloquea la fila (SELECT FOR UPDATE).
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get adjustment for update")
}

// UpdateStatus persiste la transición de estado y sus campos de decisión.
func (r *AdjustmentRepo) UpdateStatus(adjustment *entity.Adjustment) error {
	query := `
		UPDATE adjustments
		SET status = $2, approved_by = $3, rejected_by = $4, rejected_reason = $5, completed_at = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Status, nullable(adjustment.ApprovedBy), nullable(adjustment.RejectedBy),
		nullable(adjustment.RejectedReason), adjustment.CompletedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByBatch lista los ajustes de un lote, más recientes primero.
func (r *AdjustmentRepo) ListByBatch(batchID string) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE batch_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by batch: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		adjustment, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, adjustment)
	}
	return list, rows.Err()
}

// SumCompletedByBatch suma con signo los ajustes COMPLETED del lote.
func (r *AdjustmentRepo) SumCompletedByBatch(batchID string) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0), COUNT(*)
		FROM adjustments WHERE batch_id = $1 AND status = $2`
	var sum int64
	var count int
	err := r.q.QueryRow(context.Background(), query, batchID, entity.AdjustmentStatusCompleted).Scan(&sum, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("sum completed adjustments: %w", err)
	}
	return sum, count, nil
}

func (r *AdjustmentRepo) scanOne(row pgx.Row, op string) (*entity.Adjustment, error) {
	adjustment, err := scanAdjustment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return adjustment, nil
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	var approvedBy, rejectedBy, rejectedReason *string
	if err := row.Scan(
		&a.ID, &a.BatchID, &a.Type, &a.Quantity, &a.Reason, &a.Status,
		&approvedBy, &rejectedBy, &rejectedReason, &a.CompletedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if approvedBy != nil {
		a.ApprovedBy = *approvedBy
	}
	if rejectedBy != nil {
		a.RejectedBy = *rejectedBy
	}
	if rejectedReason != nil {
		a.RejectedReason = *rejectedReason
	}
	return &a, nil
}

// nullable devuelve nil para strings vacíos (columnas NULL).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
