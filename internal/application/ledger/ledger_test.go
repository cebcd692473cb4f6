package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: motor completo sobre la infraestructura en memoria, con un
// catálogo mínimo (dos productos, una bodega y un punto de venta).
// ──────────────────────────────────────────────────────────────────────────────

type testEngine struct {
	store       *memory.Store
	reader      ledger.Repos
	batches     *ledger.BatchUseCase
	adjustments *ledger.AdjustmentUseCase
	transfers   *ledger.TransferUseCase
	sales       *ledger.SaleUseCase
	reconcile   *ledger.ReconcileUseCase

	productID    string
	productID2   string
	warehouseID  string
	storefrontID string
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	store := memory.NewStore()
	reader := memory.NewRepos(store)
	txRunner := memory.NewTxRunner(store)
	products := memory.NewProductRepo(store)
	locations := memory.NewLocationRepo(store)
	log := logger.Nop()

	e := &testEngine{
		store:       store,
		reader:      reader,
		batches:     ledger.NewBatchUseCase(txRunner, reader, products, locations, log),
		adjustments: ledger.NewAdjustmentUseCase(txRunner, reader, log),
		transfers:   ledger.NewTransferUseCase(txRunner, reader, locations, log),
		sales:       ledger.NewSaleUseCase(txRunner, reader, log),
		reconcile:   ledger.NewReconcileUseCase(reader, log),
	}

	now := time.Now()
	product := &entity.Product{SKU: "SKU-001", Name: "Café molido 500g", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(product))
	e.productID = product.ID

	product2 := &entity.Product{SKU: "SKU-002", Name: "Azúcar 1kg", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(product2))
	e.productID2 = product2.ID

	warehouse := &entity.Location{Name: "Bodega central", Kind: entity.LocationKindWarehouse, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, locations.Create(warehouse))
	e.warehouseID = warehouse.ID

	storefront := &entity.Location{Name: "Punto de venta norte", Kind: entity.LocationKindStorefront, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, locations.Create(storefront))
	e.storefrontID = storefront.ID

	return e
}

// mustBatch registra un lote del producto principal en la bodega.
func (e *testEngine) mustBatch(t *testing.T, quantity int64) *entity.StockBatch {
	t.Helper()
	return e.mustBatchFor(t, e.productID, e.warehouseID, quantity)
}

func (e *testEngine) mustBatchFor(t *testing.T, productID, locationID string, quantity int64) *entity.StockBatch {
	t.Helper()
	batch, err := e.batches.CreateBatch(context.Background(), ledger.CreateBatchInput{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		UnitCost:   decimal.NewFromInt(12500),
		SupplierID: "prov-1",
		Actor:      "recepcion",
	})
	require.NoError(t, err, "el lote debe registrarse sin error")
	return batch
}

// mustCompleteAdjustment crea, aprueba y completa un ajuste contra el lote.
func (e *testEngine) mustCompleteAdjustment(t *testing.T, batchID, tipo string, quantity int64) *entity.Adjustment {
	t.Helper()
	ctx := context.Background()
	adjustment, err := e.adjustments.Create(ctx, ledger.CreateAdjustmentInput{
		BatchID:  batchID,
		Type:     tipo,
		Quantity: quantity,
		Reason:   "conteo físico",
		Status:   entity.AdjustmentStatusPending,
		Actor:    "bodeguero",
	})
	require.NoError(t, err)
	require.NoError(t, e.adjustments.Approve(ctx, adjustment.ID, "supervisor"))
	require.NoError(t, e.adjustments.Complete(ctx, adjustment.ID, "bodeguero"))
	return adjustment
}

// mustTransfer crea y despacha un traslado de un solo ítem hacia el punto de venta.
func (e *testEngine) mustTransferInTransit(t *testing.T, batchID string, quantity int64) *entity.Transfer {
	t.Helper()
	ctx := context.Background()
	transfer, err := e.transfers.Create(ctx, ledger.CreateTransferInput{
		FromLocationID: e.warehouseID,
		ToLocationID:   e.storefrontID,
		Items: []ledger.TransferItemInput{
			{ProductID: e.productID, SourceBatchID: batchID, Quantity: quantity},
		},
		CreatedBy: "bodeguero",
	})
	require.NoError(t, err)
	require.NoError(t, e.transfers.Dispatch(ctx, transfer.ID, "bodeguero"))
	return transfer
}

// availableOf devuelve la disponibilidad derivada actual del lote.
func (e *testEngine) availableOf(t *testing.T, batchID string) int64 {
	t.Helper()
	availability, err := e.batches.GetAvailability(context.Background(), batchID)
	require.NoError(t, err)
	return availability.Available
}

// cachedOf devuelve la cantidad cacheada en el nivel materializado del lote.
func (e *testEngine) cachedOf(t *testing.T, batchID string) int64 {
	t.Helper()
	level, err := e.reader.Levels.Get(batchID)
	require.NoError(t, err)
	require.NotNil(t, level, "la caché del lote debe existir")
	return level.Quantity
}
