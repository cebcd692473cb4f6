package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

func TestRecordSale_Validaciones(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	// Caso 1: cantidad no positiva
	_, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 0, Reference: "POS-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: sin referencia externa
	_, err = e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: lote inexistente
	_, err = e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: "no-existe", Quantity: 5, Reference: "POS-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_DescuentaYReferencia(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 100)

	sale, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 30, Reference: "POS-0101", Actor: "ventas",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sale.ID)

	assert.Equal(t, int64(70), e.availableOf(t, batch.ID))
	assert.Equal(t, int64(70), e.cachedOf(t, batch.ID))

	got, err := e.batches.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.True(t, got.Referenced, "la venta referencia el lote")
	assert.Equal(t, int64(100), got.IntakeQuantity, "la venta jamás toca el intake")

	sales, err := e.sales.ListByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "POS-0101", sales[0].Reference)
}

// Las ventas no pasan por el guardián: el evento ya ocurrió en el mundo real.
// El lote puede quedar negativo y la conciliación es quien lo hace visible.
func TestRecordSale_SobreventaNoSeBloquea(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	batch := e.mustBatch(t, 10)

	_, err := e.sales.RecordSale(ctx, ledger.RecordSaleInput{
		BatchID: batch.ID, Quantity: 15, Reference: "POS-0102", Actor: "ventas",
	})
	require.NoError(t, err, "la sobreventa reportada debe aceptarse")

	assert.Equal(t, int64(-5), e.availableOf(t, batch.ID), "la disponibilidad refleja el negativo tal cual")
	assert.Equal(t, int64(-5), e.cachedOf(t, batch.ID))
}
