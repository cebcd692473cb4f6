package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SupplierID string          `json:"supplier_id,omitempty"`
	IntakeAt   *time.Time      `json:"intake_at,omitempty"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	Actor      string          `json:"actor"`
}

// SetIntakeRequest body para PUT /api/batches/:id/intake.
type SetIntakeRequest struct {
	Quantity int64  `json:"quantity"`
	Actor    string `json:"actor"`
}

// AvailabilityResponse respuesta de GET /api/batches/:id/availability.
type AvailabilityResponse struct {
	BatchID    string                       `json:"batch_id"`
	ProductID  string                       `json:"product_id"`
	LocationID string                       `json:"location_id"`
	Breakdown  domain.AvailabilityBreakdown `json:"breakdown"`
	Available  int64                        `json:"available"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	BatchID  string `json:"batch_id"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
	Status   string `json:"status,omitempty"` // DRAFT (defecto) o PENDING
	Actor    string `json:"actor"`
}

// ActorRequest body para transiciones que solo requieren el actor.
type ActorRequest struct {
	Actor string `json:"actor"`
}

// RejectAdjustmentRequest body para POST /api/adjustments/:id/reject.
type RejectAdjustmentRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// TransferItemRequest una línea de un traslado a crear.
type TransferItemRequest struct {
	ProductID     string `json:"product_id"`
	SourceBatchID string `json:"source_batch_id"`
	Quantity      int64  `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromLocationID string                `json:"from_location_id"`
	ToLocationID   string                `json:"to_location_id"`
	Items          []TransferItemRequest `json:"items"`
	Actor          string                `json:"actor"`
}

// RecordSaleRequest body para POST /api/sales (reporte del subsistema de ventas).
type RecordSaleRequest struct {
	BatchID   string     `json:"batch_id"`
	Quantity  int64      `json:"quantity"`
	Reference string     `json:"reference"`
	SoldAt    *time.Time `json:"sold_at,omitempty"`
	Actor     string     `json:"actor"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	IntakeQuantity int64           `json:"intake_quantity"`
	IntakeAt       time.Time       `json:"intake_at"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	Referenced     bool            `json:"referenced"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// FromBatch arma la respuesta a partir de la entidad.
func FromBatch(b *entity.StockBatch) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		ProductID:      b.ProductID,
		LocationID:     b.LocationID,
		IntakeQuantity: b.IntakeQuantity,
		IntakeAt:       b.IntakeAt,
		UnitCost:       b.UnitCost,
		SupplierID:     b.SupplierID,
		ExpiresAt:      b.ExpiresAt,
		Referenced:     b.Referenced,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID             string     `json:"id"`
	BatchID        string     `json:"batch_id"`
	Type           string     `json:"type"`
	Quantity       int64      `json:"quantity"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ApprovedBy     string     `json:"approved_by,omitempty"`
	RejectedBy     string     `json:"rejected_by,omitempty"`
	RejectedReason string     `json:"rejected_reason,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FromAdjustment arma la respuesta a partir de la entidad.
func FromAdjustment(a *entity.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		BatchID:        a.BatchID,
		Type:           a.Type,
		Quantity:       a.Quantity,
		Reason:         a.Reason,
		Status:         a.Status,
		ApprovedBy:     a.ApprovedBy,
		RejectedBy:     a.RejectedBy,
		RejectedReason: a.RejectedReason,
		CompletedAt:    a.CompletedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// TransferItemResponse salida de una línea de traslado.
type TransferItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	SourceBatchID    string          `json:"source_batch_id"`
	DestBatchID      string          `json:"dest_batch_id,omitempty"`
	DestBatchCreated bool            `json:"dest_batch_created"`
	Quantity         int64           `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SupplierID       string          `json:"supplier_id,omitempty"`
}

// TransferResponse salida de un traslado con sus ítems.
type TransferResponse struct {
	ID             string                 `json:"id"`
	ReferenceCode  string                 `json:"reference_code"`
	FromLocationID string                 `json:"from_location_id"`
	ToLocationID   string                 `json:"to_location_id"`
	Type           string                 `json:"type"`
	Status         string                 `json:"status"`
	Items          []TransferItemResponse `json:"items"`
	CreatedBy      string                 `json:"created_by"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// FromTransfer arma la respuesta a partir de la entidad.
func FromTransfer(t *entity.Transfer) TransferResponse {
	items := make([]TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, TransferItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			SourceBatchID:    item.SourceBatchID,
			DestBatchID:      item.DestBatchID,
			DestBatchCreated: item.DestBatchCreated,
			Quantity:         item.Quantity,
			UnitCost:         item.UnitCost,
			SupplierID:       item.SupplierID,
		})
	}
	return TransferResponse{
		ID:             t.ID,
		ReferenceCode:  t.ReferenceCode,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Type:           t.Type,
		Status:         t.Status,
		Items:          items,
		CreatedBy:      t.CreatedBy,
		CompletedAt:    t.CompletedAt,
		CancelledAt:    t.CancelledAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// SaleResponse salida de un evento de venta.
type SaleResponse struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	SoldAt    time.Time `json:"sold_at"`
	CreatedAt time.Time `json:"created_at"`
}

// FromSale arma la respuesta a partir de la entidad.
func FromSale(e *entity.SaleEvent) SaleResponse {
	return SaleResponse{
		ID:        e.ID,
		BatchID:   e.BatchID,
		Quantity:  e.Quantity,
		Reference: e.Reference,
		SoldAt:    e.SoldAt,
		CreatedAt: e.CreatedAt,
	}
}

// AuditEntryResponse salida de una entrada de la bitácora.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	BatchID    string    `json:"batch_id,omitempty"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	Before     string    `json:"before,omitempty"`
	After      string    `json:"after,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromAuditEntries arma la lista de respuesta a partir de las entidades.
func FromAuditEntries(entries []*entity.AuditLogEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			BatchID:    e.BatchID,
			Action:     e.Action,
			Actor:      e.Actor,
			Before:     e.Before,
			After:      e.After,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}
