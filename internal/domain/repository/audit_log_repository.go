package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// AuditLogRepository define el puerto para la bitácora de auditoría.
// Solo se agrega; nunca se muta ni se borra una entrada.
type AuditLogRepository interface {
	Append(entry *entity.AuditLogEntry) error
	ListByEntity(entityType, entityID string) ([]*entity.AuditLogEntry, error)
	ListByBatch(batchID string, limit, offset int) ([]*entity.AuditLogEntry, error)
}
