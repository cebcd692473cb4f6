package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del ajuste: DRAFT → PENDING → APPROVED → COMPLETED, con
// PENDING → REJECTED como rama terminal. Cualquier otro salto debe rechazarse.
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_TransicionesPermitidas(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{entity.AdjustmentStatusDraft, entity.AdjustmentStatusPending, true},
		{entity.AdjustmentStatusPending, entity.AdjustmentStatusApproved, true},
		{entity.AdjustmentStatusPending, entity.AdjustmentStatusRejected, true},
		{entity.AdjustmentStatusApproved, entity.AdjustmentStatusCompleted, true},

		// Saltos de etapa
		{entity.AdjustmentStatusDraft, entity.AdjustmentStatusApproved, false},
		{entity.AdjustmentStatusDraft, entity.AdjustmentStatusCompleted, false},
		{entity.AdjustmentStatusPending, entity.AdjustmentStatusCompleted, false},

		// Retrocesos
		{entity.AdjustmentStatusApproved, entity.AdjustmentStatusPending, false},
		{entity.AdjustmentStatusPending, entity.AdjustmentStatusDraft, false},

		// Terminales: nada sale de COMPLETED ni REJECTED
		{entity.AdjustmentStatusCompleted, entity.AdjustmentStatusPending, false},
		{entity.AdjustmentStatusCompleted, entity.AdjustmentStatusApproved, false},
		{entity.AdjustmentStatusRejected, entity.AdjustmentStatusPending, false},
		{entity.AdjustmentStatusRejected, entity.AdjustmentStatusApproved, false},
	}
	for _, tc := range cases {
		a := &entity.Adjustment{Status: tc.from}
		assert.Equal(t, tc.allowed, a.CanTransition(tc.to),
			"transición %s → %s", tc.from, tc.to)
	}
}

func TestAdjustment_EstadosTerminales(t *testing.T) {
	assert.True(t, (&entity.Adjustment{Status: entity.AdjustmentStatusCompleted}).IsTerminal())
	assert.True(t, (&entity.Adjustment{Status: entity.AdjustmentStatusRejected}).IsTerminal())
	assert.False(t, (&entity.Adjustment{Status: entity.AdjustmentStatusDraft}).IsTerminal())
	assert.False(t, (&entity.Adjustment{Status: entity.AdjustmentStatusPending}).IsTerminal())
	assert.False(t, (&entity.Adjustment{Status: entity.AdjustmentStatusApproved}).IsTerminal())
}

// ──────────────────────────────────────────────────────────────────────────────
// Coherencia tipo/signo: DAMAGE y SHRINKAGE restan, FOUND suma, CORRECTION
// admite cualquier signo pero nunca cero.
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_SignoPorTipo(t *testing.T) {
	cases := []struct {
		tipo     string
		cantidad int64
		valid    bool
	}{
		{entity.AdjustmentTypeDamage, -5, true},
		{entity.AdjustmentTypeDamage, 5, false},
		{entity.AdjustmentTypeShrinkage, -1, true},
		{entity.AdjustmentTypeShrinkage, 3, false},
		{entity.AdjustmentTypeFound, 10, true},
		{entity.AdjustmentTypeFound, -10, false},
		{entity.AdjustmentTypeCorrection, 7, true},
		{entity.AdjustmentTypeCorrection, -7, true},
		{entity.AdjustmentTypeCorrection, 0, false},
		{entity.AdjustmentTypeDamage, 0, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, entity.ValidAdjustmentSign(tc.tipo, tc.cantidad),
			"tipo %s cantidad %d", tc.tipo, tc.cantidad)
	}
}

func TestAdjustment_TiposConocidos(t *testing.T) {
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentTypeDamage))
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentTypeShrinkage))
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentTypeFound))
	assert.True(t, entity.ValidAdjustmentType(entity.AdjustmentTypeCorrection))
	assert.False(t, entity.ValidAdjustmentType("RECOUNT"), "tipo desconocido debe rechazarse")
	assert.False(t, entity.ValidAdjustmentType(""), "tipo vacío debe rechazarse")
}
