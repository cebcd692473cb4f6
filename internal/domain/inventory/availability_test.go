package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fórmula de disponibilidad:
//
//	disponible = intake + Σajustes − Σtraslados-salida + Σtraslados-entrada − Σventas
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailable_Formula(t *testing.T) {
	cases := []struct {
		name     string
		b        domain.AvailabilityBreakdown
		expected int64
	}{
		{
			name:     "lote recién recibido sin eventos",
			b:        domain.AvailabilityBreakdown{RecordedIntake: 100},
			expected: 100,
		},
		{
			name: "todos los términos presentes",
			b: domain.AvailabilityBreakdown{
				RecordedIntake: 100,
				AdjustmentSum:  -10, // daño
				TransferOutSum: 20,
				TransferInSum:  5,
				SaleSum:        30,
			},
			expected: 45,
		},
		{
			name: "ajuste positivo (FOUND) suma",
			b: domain.AvailabilityBreakdown{
				RecordedIntake: 50,
				AdjustmentSum:  8,
			},
			expected: 58,
		},
		{
			name:     "intake cero sin eventos",
			b:        domain.AvailabilityBreakdown{},
			expected: 0,
		},
		{
			// Las ventas no pasan por el guardián: el lote puede quedar
			// negativo y el cálculo debe reflejarlo tal cual.
			name: "ventas reportadas en exceso dejan negativo",
			b: domain.AvailabilityBreakdown{
				RecordedIntake: 10,
				SaleSum:        15,
			},
			expected: -5,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, inventory.Available(tc.b))
		})
	}
}

func TestCoversRequest(t *testing.T) {
	b := domain.AvailabilityBreakdown{RecordedIntake: 100, AdjustmentSum: -10}

	assert.True(t, inventory.CoversRequest(b, 90), "exactamente lo disponible debe cubrir")
	assert.True(t, inventory.CoversRequest(b, 1))
	assert.False(t, inventory.CoversRequest(b, 91), "uno más de lo disponible no cubre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de conciliación: delta = caché − recalculado; nunca corrige nada.
// ──────────────────────────────────────────────────────────────────────────────

func TestNewReconciliationReport_CacheConsistente(t *testing.T) {
	now := time.Now()
	b := domain.AvailabilityBreakdown{RecordedIntake: 100, AdjustmentSum: -10}

	report := inventory.NewReconciliationReport("lote-1", "prod-1", "ubi-1", b, 90, 1, now)

	assert.True(t, report.Reconciled, "caché igual al recalculado debe conciliar")
	assert.Equal(t, int64(0), report.Delta)
	assert.Equal(t, int64(90), report.ComputedAvailable)
	assert.Equal(t, int64(90), report.CachedQuantity)
	assert.Equal(t, 1, report.EventCount)
	assert.Equal(t, now, report.GeneratedAt)
}

func TestNewReconciliationReport_CacheDesfasada(t *testing.T) {
	b := domain.AvailabilityBreakdown{RecordedIntake: 100, SaleSum: 40}

	report := inventory.NewReconciliationReport("lote-1", "prod-1", "ubi-1", b, 75, 2, time.Now())

	assert.False(t, report.Reconciled)
	assert.Equal(t, int64(60), report.ComputedAvailable)
	assert.Equal(t, int64(15), report.Delta, "delta debe ser caché − recalculado")
	assert.Equal(t, b, report.Breakdown, "el reporte conserva el desglose término a término")
}
