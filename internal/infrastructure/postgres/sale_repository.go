package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Append-only.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste un evento de venta reportado.
func (r *SaleRepo) Create(sale *entity.SaleEvent) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_events (id, batch_id, quantity, reference, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.BatchID, sale.Quantity, sale.Reference, sale.SoldAt, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale event: %w", err)
	}
	return nil
}

// ListByBatch lista los eventos de venta contra un lote, más recientes primero.
func (r *SaleRepo) ListByBatch(batchID string) ([]*entity.SaleEvent, error) {
	query := `
		SELECT id, batch_id, quantity, reference, sold_at, created_at
		FROM sale_events WHERE batch_id = $1 ORDER BY sold_at DESC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list sales by batch: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleEvent
	for rows.Next() {
		var s entity.SaleEvent
		if err := rows.Scan(&s.ID, &s.BatchID, &s.Quantity, &s.Reference, &s.SoldAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale event: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumByBatch suma las cantidades vendidas contra el lote.
func (r *SaleRepo) SumByBatch(batchID string) (int64, int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0), COUNT(*) FROM sale_events WHERE batch_id = $1`
	var sum int64
	var count int
	if err := r.q.QueryRow(context.Background(), query, batchID).Scan(&sum, &count); err != nil {
		return 0, 0, fmt.Errorf("sum sales: %w", err)
	}
	return sum, count, nil
}
