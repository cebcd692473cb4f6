package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

func TestAdjustment_Validaciones(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	// Caso 1: tipo desconocido
	_, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: "RECOUNT", Quantity: -5, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: signo incoherente con el tipo (DAMAGE positivo)
	_, err = e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeDamage, Quantity: 5, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: cantidad cero
	_, err = e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeCorrection, Quantity: 0, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 4: sin motivo
	_, err = e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeFound, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 5: lote inexistente
	_, err = e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: "no-existe", Type: entity.AdjustmentTypeFound, Quantity: 5, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Caso 6: estado inicial inválido (solo DRAFT o PENDING)
	_, err = e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeFound, Quantity: 5, Reason: "x",
		Status: entity.AdjustmentStatusApproved,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Flujo completo DRAFT → PENDING → APPROVED → COMPLETED. El intake del lote no
// cambia en ninguna etapa; el delta solo entra a la fórmula al completar.
func TestAdjustment_FlujoDeAprobacionCompleto(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	adjustment, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID:  batch.ID,
		Type:     entity.AdjustmentTypeDamage,
		Quantity: -10,
		Reason:   "caja aplastada en recepción",
		Actor:    "bodeguero",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusDraft, adjustment.Status)
	assert.Equal(t, int64(100), e.availableOf(t, batch.ID), "un DRAFT no afecta disponibilidad")

	require.NoError(t, e.adjustments.Submit(ctx, adjustment.ID, "bodeguero"))
	got, err := e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, got.Status)
	assert.Equal(t, int64(100), e.availableOf(t, batch.ID), "un PENDING no afecta disponibilidad")

	require.NoError(t, e.adjustments.Approve(ctx, adjustment.ID, "supervisor"))
	got, err = e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, got.Status)
	assert.Equal(t, "supervisor", got.ApprovedBy)
	assert.Equal(t, int64(100), e.availableOf(t, batch.ID), "aprobar es una decisión, no una aplicación")

	require.NoError(t, e.adjustments.Complete(ctx, adjustment.ID, "bodeguero"))
	got, err = e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, int64(90), e.availableOf(t, batch.ID), "el delta entra a la fórmula al completar")
	assert.Equal(t, int64(90), e.cachedOf(t, batch.ID))

	// El intake del lote permaneció intacto durante todo el flujo.
	final, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), final.IntakeQuantity, "completar un ajuste jamás muta el intake")
	assert.True(t, final.Referenced, "completar referencia el lote")
}

func TestAdjustment_RechazoEsTerminal(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	adjustment, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeShrinkage, Quantity: -3,
		Reason: "diferencia de conteo", Status: entity.AdjustmentStatusPending, Actor: "bodeguero",
	})
	require.NoError(t, err)

	// Rechazar exige motivo.
	assert.ErrorIs(t, e.adjustments.Reject(ctx, adjustment.ID, "supervisor", ""), domain.ErrInvalidInput)

	require.NoError(t, e.adjustments.Reject(ctx, adjustment.ID, "supervisor", "no corresponde al lote"))
	got, err := e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusRejected, got.Status)
	assert.Equal(t, "supervisor", got.RejectedBy)
	assert.Equal(t, "no corresponde al lote", got.RejectedReason)

	// Nada sale de REJECTED.
	var transition *domain.InvalidStateTransitionError
	err = e.adjustments.Approve(ctx, adjustment.ID, "supervisor")
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, entity.AdjustmentStatusRejected, transition.From)

	// Y el lote nunca fue referenciado ni su disponibilidad tocada.
	assert.Equal(t, int64(100), e.availableOf(t, batch.ID))
	final, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.False(t, final.Referenced)
}

func TestAdjustment_TransicionesInvalidas(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	adjustment, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeFound, Quantity: 5,
		Reason: "encontrado en estantería", Actor: "bodeguero",
	})
	require.NoError(t, err)

	// Completar un DRAFT salta dos etapas.
	var transition *domain.InvalidStateTransitionError
	err = e.adjustments.Complete(ctx, adjustment.ID, "bodeguero")
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, entity.AdjustmentStatusDraft, transition.From)
	assert.Equal(t, entity.AdjustmentStatusCompleted, transition.To)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// Aprobar un DRAFT también.
	assert.Error(t, e.adjustments.Approve(ctx, adjustment.ID, "supervisor"))

	// El fallo no dejó rastro en el estado.
	got, err := e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusDraft, got.Status)
}

// El guardián rechaza completar un ajuste negativo que dejaría el lote bajo
// cero, con el desglose completo en el error.
func TestAdjustment_GuardianDeDisponibilidad(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 10)

	adjustment, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID: batch.ID, Type: entity.AdjustmentTypeDamage, Quantity: -15,
		Reason: "daño por humedad", Status: entity.AdjustmentStatusPending, Actor: "bodeguero",
	})
	require.NoError(t, err)
	require.NoError(t, e.adjustments.Approve(ctx, adjustment.ID, "supervisor"))

	err = e.adjustments.Complete(ctx, adjustment.ID, "bodeguero")

	var insufficient *domain.InsufficientAvailabilityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, batch.ID, insufficient.BatchID)
	assert.Equal(t, int64(15), insufficient.Requested)
	assert.Equal(t, int64(5), insufficient.Shortfall())
	assert.ErrorIs(t, err, domain.ErrInsufficientAvailability)

	// El ajuste sigue APPROVED y el lote intacto: el intento se revirtió entero.
	got, err := e.adjustments.Get(ctx, adjustment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, got.Status)
	assert.Equal(t, int64(10), e.availableOf(t, batch.ID))

	final, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.False(t, final.Referenced, "un intento fallido no referencia el lote")
}

// Un ajuste positivo nunca pasa por el guardián: agregar stock siempre es seguro.
func TestAdjustment_PositivoNoPasaPorGuardian(t *testing.T) {
	e := newTestEngine(t)
	batch := e.mustBatch(t, 0)

	e.mustCompleteAdjustment(t, batch.ID, entity.AdjustmentTypeFound, 25)

	assert.Equal(t, int64(25), e.availableOf(t, batch.ID))
}
