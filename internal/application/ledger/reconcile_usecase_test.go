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

func TestReconcile_LoteConsistente(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	e.mustCompleteAdjustment(t, batch.ID, entity.AdjustmentTypeDamage, -10)
	_, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 20, Reference: "POS-0201", Actor: "ventas",
	})
	require.NoError(t, err)

	report, err := e.reconcile.Reconcile(ctx, batch.ID)
	require.NoError(t, err)

	assert.True(t, report.Reconciled, "la caché mantenida en transacción debe conciliar siempre")
	assert.Equal(t, int64(0), report.Delta)
	assert.Equal(t, int64(70), report.ComputedAvailable)
	assert.Equal(t, int64(70), report.CachedQuantity)
	assert.Equal(t, 2, report.EventCount, "un ajuste y una venta")
	assert.Equal(t, int64(-10), report.Breakdown.AdjustmentSum)
	assert.Equal(t, int64(20), report.Breakdown.SaleSum)
}

// Una caché corrupta (escrita por fuera del motor) se reporta con su delta;
// el reporte jamás la corrige.
func TestReconcile_CacheCorrupta(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	// Corrupción simulada: alguien escribió la caché sin pasar por el motor.
	require.NoError(t, e.reader.Levels.Upsert(&entity.StockLevel{
		BatchID:    batch.ID,
		ProductID:  batch.ProductID,
		LocationID: batch.LocationID,
		Quantity:   130,
	}))

	report, err := e.reconcile.Reconcile(ctx, batch.ID)
	require.NoError(t, err)

	assert.False(t, report.Reconciled)
	assert.Equal(t, int64(100), report.ComputedAvailable)
	assert.Equal(t, int64(130), report.CachedQuantity)
	assert.Equal(t, int64(30), report.Delta, "delta = caché − recalculado")

	// Solo reporta: la caché corrupta sigue ahí hasta que alguien decida.
	level, err := e.reader.Levels.Get(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(130), level.Quantity)

	// Y un segundo reporte dice exactamente lo mismo.
	again, err := e.reconcile.Reconcile(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Delta, again.Delta)
}

func TestReconcile_LoteInexistente(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.reconcile.Reconcile(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.reconcile.Reconcile(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
