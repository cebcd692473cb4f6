package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC      *ledger.BatchUseCase
	AdjustmentUC *ledger.AdjustmentUseCase
	TransferUC   *ledger.TransferUseCase
	SaleUC       *ledger.SaleUseCase
	ReconcileUC  *ledger.ReconcileUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Lotes: libro de ingresos y disponibilidad derivada
	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.ReconcileUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id/intake", batchHandler.SetIntake)
	batches.Get("/:id/availability", batchHandler.Availability)
	batches.Get("/:id/reconcile", batchHandler.Reconcile)
	batches.Get("/:id/audit", batchHandler.AuditTrail)

	// Ajustes: diario con flujo de aprobación
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.ListByBatch)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/submit", adjustmentHandler.Submit)
	adjustments.Post("/:id/approve", adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", adjustmentHandler.Reject)
	adjustments.Post("/:id/complete", adjustmentHandler.Complete)

	// Traslados: movimiento multi-ítem entre ubicaciones
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/dispatch", transferHandler.Dispatch)
	transfers.Post("/:id/complete", transferHandler.Complete)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Ventas: eventos reportados por el subsistema de ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Record)
	sales.Get("/", saleHandler.ListByBatch)
}
