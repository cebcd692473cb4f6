package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
// La tabla no tiene UPDATE ni DELETE en ninguna ruta del motor.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, entity_type, entity_id, batch_id, action, actor, before_state, after_state, detail, created_at`

// Append agrega una entrada a la bitácora.
func (r *AuditLogRepo) Append(entry *entity.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.EntityType, entry.EntityID, nullable(entry.BatchID),
		entry.Action, nullable(entry.Actor), nullable(entry.Before), nullable(entry.After),
		nullable(entry.Detail), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListByEntity lista la bitácora de una entidad, en orden cronológico.
func (r *AuditLogRepo) ListByEntity(entityType, entityID string) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + ` FROM audit_log
		WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit by entity: %w", err)
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

// ListByBatch lista la bitácora de todo lo que tocó un lote, más reciente primero.
func (r *AuditLogRepo) ListByBatch(batchID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + ` FROM audit_log
		WHERE batch_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, batchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit by batch: %w", err)
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows pgx.Rows) ([]*entity.AuditLogEntry, error) {
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var batchID, actor, before, after, detail *string
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &batchID, &e.Action,
			&actor, &before, &after, &detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if batchID != nil {
			e.BatchID = *batchID
		}
		if actor != nil {
			e.Actor = *actor
		}
		if before != nil {
			e.Before = *before
		}
		if after != nil {
			e.After = *after
		}
		if detail != nil {
			e.Detail = *detail
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
