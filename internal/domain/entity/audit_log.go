package entity

import "time"

// Acciones registradas en la bitácora de auditoría.
const (
	AuditActionBatchCreated      = "BATCH_CREATED"
	AuditActionIntakeUpdated     = "INTAKE_UPDATED"
	AuditActionAdjustmentCreated = "ADJUSTMENT_CREATED"
	AuditActionSubmitted         = "SUBMITTED"
	AuditActionApproved          = "APPROVED"
	AuditActionRejected          = "REJECTED"
	AuditActionCompleted         = "COMPLETED"
	AuditActionTransferCreated   = "TRANSFER_CREATED"
	AuditActionDispatched        = "DISPATCHED"
	AuditActionCancelled         = "CANCELLED"
	AuditActionTransferItemOut   = "TRANSFER_ITEM_OUT"
	AuditActionSaleRecorded      = "SALE_RECORDED"
)

// Entidades auditables.
const (
	AuditEntityBatch      = "batch"
	AuditEntityAdjustment = "adjustment"
	AuditEntityTransfer   = "transfer"
	AuditEntitySale       = "sale"
)

// AuditLogEntry es el registro inmutable de cada aprobación, completado o
// rechazo: actor, resumen antes/después y marca de tiempo. Append-only; nunca
// se muta ni se borra.
type AuditLogEntry struct {
	ID         string
	EntityType string
	EntityID   string
	BatchID    string // lote afectado, si aplica
	Action     string
	Actor      string
	Before     string // resumen compacto del estado anterior
	After      string // resumen compacto del estado posterior
	Detail     string
	CreatedAt  time.Time
}
