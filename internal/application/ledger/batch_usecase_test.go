package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

func TestCreateBatch_RegistraLoteYCache(t *testing.T) {
	e := newTestEngine(t)

	batch := e.mustBatch(t, 100)

	assert.NotEmpty(t, batch.ID)
	assert.False(t, batch.Referenced, "un lote recién creado no está referenciado")
	assert.Equal(t, int64(100), batch.IntakeQuantity)
	assert.Equal(t, int64(100), e.availableOf(t, batch.ID))
	assert.Equal(t, int64(100), e.cachedOf(t, batch.ID), "la caché se inicializa con el intake")
}

func TestCreateBatch_Validaciones(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// Caso 1: cantidad negativa
	_, err := e.batches.CreateBatch(ctx, ledger.CreateBatchInput{
		ProductID: e.productID, LocationID: e.warehouseID, Quantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: costo negativo
	_, err = e.batches.CreateBatch(ctx, ledger.CreateBatchInput{
		ProductID: e.productID, LocationID: e.warehouseID, Quantity: 10,
		UnitCost: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: producto inexistente
	_, err = e.batches.CreateBatch(ctx, ledger.CreateBatchInput{
		ProductID: "no-existe", LocationID: e.warehouseID, Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Caso 4: ubicación inexistente
	_, err = e.batches.CreateBatch(ctx, ledger.CreateBatchInput{
		ProductID: e.productID, LocationID: "no-existe", Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un lote con cantidad cero es válido: recepción registrada en ceros a la
// espera de corrección del ingreso.
func TestCreateBatch_CantidadCeroPermitida(t *testing.T) {
	e := newTestEngine(t)

	batch := e.mustBatch(t, 0)
	assert.Equal(t, int64(0), e.availableOf(t, batch.ID))
}

func TestSetIntakeQuantity_LoteNoReferenciado(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	require.NoError(t, e.batches.SetIntakeQuantity(ctx, batch.ID, 120, "recepcion"))

	updated, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), updated.IntakeQuantity)
	assert.Equal(t, int64(120), e.availableOf(t, batch.ID))
	assert.Equal(t, int64(120), e.cachedOf(t, batch.ID), "la caché sigue al intake corregido")
}

// Invariante central: intake_quantity queda inmutable en cuanto cualquier
// evento se compromete contra el lote.
func TestSetIntakeQuantity_LoteReferenciadoEsInmutable(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	// Una venta reportada referencia el lote.
	_, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 5, Reference: "POS-0001", Actor: "ventas",
	})
	require.NoError(t, err)

	err = e.batches.SetIntakeQuantity(ctx, batch.ID, 120, "recepcion")

	var immutable *domain.ImmutableFieldError
	require.ErrorAs(t, err, &immutable, "debe rechazarse con ImmutableFieldError")
	assert.Equal(t, batch.ID, immutable.BatchID)
	assert.Equal(t, "intake_quantity", immutable.Field)
	assert.ErrorIs(t, err, domain.ErrImmutableField)

	// El intake no cambió.
	updated, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.IntakeQuantity)
}

func TestGetAvailability_DesgloseTerminoATermino(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	e.mustCompleteAdjustment(t, batch.ID, entity.AdjustmentTypeDamage, -10)
	_, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 30, Reference: "POS-0002", Actor: "ventas",
	})
	require.NoError(t, err)

	availability, err := e.batches.GetAvailability(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), availability.Breakdown.RecordedIntake)
	assert.Equal(t, int64(-10), availability.Breakdown.AdjustmentSum)
	assert.Equal(t, int64(30), availability.Breakdown.SaleSum)
	assert.Equal(t, int64(60), availability.Available)
}

func TestGetAvailability_LoteInexistente(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.batches.GetAvailability(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditTrail_RegistraCadaOperacion(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	require.NoError(t, e.batches.SetIntakeQuantity(ctx, batch.ID, 110, "recepcion"))
	e.mustCompleteAdjustment(t, batch.ID, entity.AdjustmentTypeFound, 5)

	entries, err := e.batches.AuditTrail(ctx, batch.ID, 50, 0)
	require.NoError(t, err)

	actions := make(map[string]int)
	for _, entry := range entries {
		actions[entry.Action]++
	}
	assert.Equal(t, 1, actions[entity.AuditActionBatchCreated])
	assert.Equal(t, 1, actions[entity.AuditActionIntakeUpdated])
	assert.Equal(t, 1, actions[entity.AuditActionAdjustmentCreated])
	assert.Equal(t, 1, actions[entity.AuditActionCompleted], "la completación del ajuste queda auditada contra el lote")
}

// La creación fallida no deja rastro: la transacción revierte lote y caché.
func TestCreateBatch_Atomicidad(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.batches.CreateBatch(context.Background(), ledger.CreateBatchInput{
		ProductID: "no-existe", LocationID: e.warehouseID, Quantity: 10,
	})
	require.Error(t, err)

	levels, listErr := e.reader.Levels.ListByLocation(e.warehouseID, 50, 0)
	require.NoError(t, listErr)
	assert.Empty(t, levels, "no debe quedar caché de un lote no creado")

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error inesperado: %v", err)
	}
}
