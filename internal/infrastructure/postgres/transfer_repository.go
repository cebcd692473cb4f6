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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, reference_code, from_location_id, to_location_id, type, status, created_by, completed_at, cancelled_at, created_at, updated_at`
const transferItemColumns = `id, transfer_id, product_id, source_batch_id, dest_batch_id, dest_batch_created, quantity, unit_cost, supplier_id, created_at`

// Create persiste el traslado con todos sus ítems en la transacción en curso.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.ReferenceCode, transfer.FromLocationID, transfer.ToLocationID,
		transfer.Type, transfer.Status, nullable(transfer.CreatedBy),
		transfer.CompletedAt, transfer.CancelledAt, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO transfer_items (` + transferItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range transfer.Items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, transfer.ID, item.ProductID, item.SourceBatchID,
			nullable(item.DestBatchID), item.DestBatchCreated, item.Quantity,
			item.UnitCost, nullable(item.SupplierID), item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado con sus ítems.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.getOne(query, id, "get transfer")
}

// GetForUpdate obtiene el traslado (con ítems) y bloquea su fila.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id, "get transfer for update")
}

func (r *TransferRepo) getOne(query, id, op string) (*entity.Transfer, error) {
	transfer, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadItems(transfer); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return transfer, nil
}

func (r *TransferRepo) loadItems(transfer *entity.Transfer) error {
	query := `SELECT ` + transferItemColumns + ` FROM transfer_items WHERE transfer_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transfer.ID)
	if err != nil {
		return fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanTransferItem(rows)
		if err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		transfer.Items = append(transfer.Items, item)
	}
	return rows.Err()
}

// UpdateStatus persiste la transición de estado del traslado.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, completed_at = $3, cancelled_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, transfer.CompletedAt, transfer.CancelledAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetItemDestination fija el lote destino del ítem al completar el traslado.
func (r *TransferRepo) SetItemDestination(itemID, destBatchID string, destCreated bool) error {
	query := `UPDATE transfer_items SET dest_batch_id = $2, dest_batch_created = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, destBatchID, destCreated)
	if err != nil {
		return fmt.Errorf("set item destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByLocation lista traslados que tocan una ubicación (origen o destino).
func (r *TransferRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE from_location_id = $1 OR to_location_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, transfer := range list {
		if err := r.loadItems(transfer); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SumCompletedOutByBatch suma las salidas de traslados COMPLETED con origen en el lote.
func (r *TransferRepo) SumCompletedOutByBatch(batchID string) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(i.quantity), 0), COUNT(*)
		FROM transfer_items i
		JOIN transfers t ON t.id = i.transfer_id
		WHERE i.source_batch_id = $1 AND t.status = $2`
	var sum int64
	var count int
	err := r.q.QueryRow(context.Background(), query, batchID, entity.TransferStatusCompleted).Scan(&sum, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("sum transfer out: %w", err)
	}
	return sum, count, nil
}

// SumCompletedInByBatch suma las entradas de traslados COMPLETED que aterrizaron
// en el lote sin crearlo (los lotes creados por el traslado ya llevan la
// cantidad en su intake).
func (r *TransferRepo) SumCompletedInByBatch(batchID string) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(i.quantity), 0), COUNT(*)
		FROM transfer_items i
		JOIN transfers t ON t.id = i.transfer_id
		WHERE i.dest_batch_id = $1 AND i.dest_batch_created = FALSE AND t.status = $2`
	var sum int64
	var count int
	err := r.q.QueryRow(context.Background(), query, batchID, entity.TransferStatusCompleted).Scan(&sum, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("sum transfer in: %w", err)
	}
	return sum, count, nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var createdBy *string
	if err := row.Scan(
		&t.ID, &t.ReferenceCode, &t.FromLocationID, &t.ToLocationID, &t.Type, &t.Status,
		&createdBy, &t.CompletedAt, &t.CancelledAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

func scanTransferItem(row pgx.Row) (*entity.TransferItem, error) {
	var i entity.TransferItem
	var destBatchID, supplierID *string
	if err := row.Scan(
		&i.ID, &i.TransferID, &i.ProductID, &i.SourceBatchID, &destBatchID,
		&i.DestBatchCreated, &i.Quantity, &i.UnitCost, &supplierID, &i.CreatedAt,
	); err != nil {
		return nil, err
	}
	if destBatchID != nil {
		i.DestBatchID = *destBatchID
	}
	if supplierID != nil {
		i.SupplierID = *supplierID
	}
	return &i, nil
}
