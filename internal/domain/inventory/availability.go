package inventory

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// Available aplica la fórmula de disponibilidad sobre los términos derivados
// del historial de eventos de un lote (servicio de dominio, función pura):
//
//	disponible = intake + Σajustes completados − Σtraslados-salida completados
//	           + Σtraslados-entrada completados − Σventas completadas
//
// Se recalcula en tiempo de lectura desde el log; jamás se persiste como campo
// editable independiente.
func Available(b domain.AvailabilityBreakdown) int64 {
	return b.Available()
}

// CoversRequest indica si la disponibilidad derivada cubre la cantidad pedida.
func CoversRequest(b domain.AvailabilityBreakdown, requested int64) bool {
	return b.Available() >= requested
}

// ReconciliationReport es el resultado de reproducir el historial de eventos de
// un lote y contrastarlo contra la caché materializada. Un delta distinto de
// cero indica un error aguas arriba del motor (intake mal registrado o evento
// ausente del log) y se reporta con el desglose de cada término contribuyente;
// nunca se autocorrige.
type ReconciliationReport struct {
	BatchID           string                       `json:"batch_id"`
	ProductID         string                       `json:"product_id"`
	LocationID        string                       `json:"location_id"`
	Breakdown         domain.AvailabilityBreakdown `json:"breakdown"`
	ComputedAvailable int64                        `json:"computed_available"`
	CachedQuantity    int64                        `json:"cached_quantity"`
	Delta             int64                        `json:"delta"` // caché − recalculado
	Reconciled        bool                         `json:"reconciled"`
	EventCount        int                          `json:"event_count"`
	GeneratedAt       time.Time                    `json:"generated_at"`
}

// NewReconciliationReport arma el reporte a partir del desglose recalculado y
// la cantidad cacheada.
func NewReconciliationReport(batchID, productID, locationID string, b domain.AvailabilityBreakdown, cached int64, events int, at time.Time) *ReconciliationReport {
	computed := b.Available()
	return &ReconciliationReport{
		BatchID:           batchID,
		ProductID:         productID,
		LocationID:        locationID,
		Breakdown:         b,
		ComputedAvailable: computed,
		CachedQuantity:    cached,
		Delta:             cached - computed,
		Reconciled:        cached == computed,
		EventCount:        events,
		GeneratedAt:       at,
	}
}
