package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de traslado según el par de ubicaciones (bodega ↔ punto de venta).
const (
	TransferTypeWarehouseToWarehouse   = "WAREHOUSE_TO_WAREHOUSE"
	TransferTypeWarehouseToStorefront  = "WAREHOUSE_TO_STOREFRONT"
	TransferTypeStorefrontToWarehouse  = "STOREFRONT_TO_WAREHOUSE"
	TransferTypeStorefrontToStorefront = "STOREFRONT_TO_STOREFRONT"
)

// Estados del traslado. COMPLETED y CANCELLED son terminales: un traslado
// completado nunca se borra ni se reabre; corregirlo exige un traslado de
// reversa o un ajuste, jamás una edición retroactiva.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// transferTransitions tabla cerrada de transiciones permitidas.
var transferTransitions = map[string][]string{
	TransferStatusPending:   {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit: {TransferStatusCompleted, TransferStatusCancelled},
}

// Transfer es un movimiento multi-ítem de stock entre dos ubicaciones.
// Los ítems quedan fijos en cuanto el traslado sale de PENDING. Al completarse,
// las cantidades se descuentan de la disponibilidad derivada del lote origen y
// se suman como lote nuevo (o evento de entrada) en el destino; nunca mutando
// IntakeQuantity del lote origen.
type Transfer struct {
	ID             string
	ReferenceCode  string // ej. TRF-9F2C41A0
	FromLocationID string
	ToLocationID   string
	Type           string
	Status         string
	Items          []*TransferItem
	CreatedBy      string
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransferItem es una línea del traslado. UnitCost y SupplierID se copian del
// lote origen al crear el traslado (snapshot para estabilidad de auditoría).
// DestBatchID y DestBatchCreated se fijan al completar: si el destino ya tenía
// lote para el producto se registra un evento de entrada contra él; si no, se
// crea un lote nuevo cuyo intake ya incluye la cantidad trasladada (y entonces
// no se suma además como entrada, para no contar doble).
type TransferItem struct {
	ID               string
	TransferID       string
	ProductID        string
	SourceBatchID    string
	DestBatchID      string
	DestBatchCreated bool
	Quantity         int64 // > 0
	UnitCost         decimal.Decimal
	SupplierID       string
	CreatedAt        time.Time
}

// CanTransition indica si el paso de estado actual → to está en la tabla.
func (t *Transfer) CanTransition(to string) bool {
	for _, next := range transferTransitions[t.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el traslado ya no admite cambios.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}

// TransferTypeFor deriva el tipo de traslado desde los kinds de las ubicaciones.
func TransferTypeFor(fromKind, toKind string) string {
	if fromKind == LocationKindWarehouse {
		if toKind == LocationKindWarehouse {
			return TransferTypeWarehouseToWarehouse
		}
		return TransferTypeWarehouseToStorefront
	}
	if toKind == LocationKindWarehouse {
		return TransferTypeStorefrontToWarehouse
	}
	return TransferTypeStorefrontToStorefront
}
