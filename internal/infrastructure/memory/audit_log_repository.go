package memory

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// AuditLogRepo implementa AuditLogRepository sobre el almacén en memoria.
type AuditLogRepo struct {
	s    *Store
	inTx bool
}

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// Append agrega una entrada a la bitácora.
func (r *AuditLogRepo) Append(entry *entity.AuditLogEntry) error {
	defer r.s.enter(r.inTx)()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	stored := *entry
	r.s.audit = append(r.s.audit, &stored)
	return nil
}

// ListByEntity lista las entradas de una entidad en orden de inserción.
func (r *AuditLogRepo) ListByEntity(entityType, entityID string) ([]*entity.AuditLogEntry, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.AuditLogEntry
	for _, e := range r.s.audit {
		if e.EntityType == entityType && e.EntityID == entityID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// ListByBatch lista las entradas que tocan un lote, en orden de inserción.
func (r *AuditLogRepo) ListByBatch(batchID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	defer r.s.enter(r.inTx)()
	var matched []*entity.AuditLogEntry
	for _, e := range r.s.audit {
		if e.BatchID == batchID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	return page(matched, limit, offset), nil
}
