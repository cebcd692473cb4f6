package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// BatchHandler maneja las peticiones HTTP del libro de lotes.
type BatchHandler struct {
	uc        *ledger.BatchUseCase
	reconcile *ledger.ReconcileUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *ledger.BatchUseCase, reconcile *ledger.ReconcileUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, reconcile: reconcile}
}

// Create godoc
// @Summary      Registrar la recepción de un lote
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "product_id, location_id, quantity, unit_cost"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.CreateBatchInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		SupplierID: in.SupplierID,
		ExpiresAt:  in.ExpiresAt,
		Actor:      in.Actor,
	}
	if in.IntakeAt != nil {
		input.IntakeAt = *in.IntakeAt
	}
	batch, err := h.uc.CreateBatch(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromBatch(batch))
}

// GetByID godoc
// @Summary      Consultar un lote
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromBatch(batch))
}

// SetIntake godoc
// @Summary      Corregir la cantidad de ingreso de un lote no referenciado
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.SetIntakeRequest  true  "quantity, actor"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "lote ya referenciado"
// @Router       /api/batches/{id}/intake [put]
func (h *BatchHandler) SetIntake(c *fiber.Ctx) error {
	var in dto.SetIntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetIntakeQuantity(c.Context(), c.Params("id"), in.Quantity, in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cantidad de ingreso actualizada"})
}

// Availability godoc
// @Summary      Disponibilidad derivada del lote (recalculada del log de eventos)
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/availability [get]
func (h *BatchHandler) Availability(c *fiber.Ctx) error {
	availability, err := h.uc.GetAvailability(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		BatchID:    availability.Batch.ID,
		ProductID:  availability.Batch.ProductID,
		LocationID: availability.Batch.LocationID,
		Breakdown:  availability.Breakdown,
		Available:  availability.Available,
	})
}

// Reconcile godoc
// @Summary      Reporte de conciliación del lote (caché vs. recalculado)
// @Description  Solo reporta; nunca corrige automáticamente.
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  inventory.ReconciliationReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/reconcile [get]
func (h *BatchHandler) Reconcile(c *fiber.Ctx) error {
	report, err := h.reconcile.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// AuditTrail godoc
// @Summary      Bitácora de auditoría del lote
// @Tags         batches
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "máximo de entradas (defecto 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.AuditEntryResponse
// @Router       /api/batches/{id}/audit [get]
func (h *BatchHandler) AuditTrail(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	entries, err := h.uc.AuditTrail(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": dto.FromAuditEntries(entries)})
}
