package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// AdjustmentHandler maneja las peticiones HTTP del diario de ajustes.
type AdjustmentHandler struct {
	uc *ledger.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *ledger.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un ajuste (DRAFT o PENDING)
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "batch_id, type, quantity (con signo), reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adjustment, err := h.uc.Create(c.Context(), ledger.CreateAdjustmentInput{
		BatchID:  in.BatchID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		Status:   in.Status,
		Actor:    in.Actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAdjustment(adjustment))
}

// GetByID godoc
// @Summary      Consultar un ajuste
// @Tags         adjustments
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adjustment, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAdjustment(adjustment))
}

// Submit godoc
// @Summary      Enviar un ajuste DRAFT a aprobación
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.ActorRequest  true  "actor"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida"
// @Router       /api/adjustments/{id}/submit [post]
func (h *AdjustmentHandler) Submit(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Submit(c.Context(), c.Params("id"), in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste enviado a aprobación"})
}

// Approve godoc
// @Summary      Aprobar un ajuste PENDING
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.ActorRequest  true  "actor (aprobador)"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida"
// @Router       /api/adjustments/{id}/approve [post]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Approve(c.Context(), c.Params("id"), in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste aprobado"})
}

// Reject godoc
// @Summary      Rechazar un ajuste PENDING
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.RejectAdjustmentRequest  true  "actor, reason"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida"
// @Router       /api/adjustments/{id}/reject [post]
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), c.Params("id"), in.Actor, in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste rechazado"})
}

// Complete godoc
// @Summary      Completar un ajuste APPROVED (compromete el delta contra el lote)
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.ActorRequest  true  "actor"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida o disponibilidad insuficiente"
// @Router       /api/adjustments/{id}/complete [post]
func (h *AdjustmentHandler) Complete(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Complete(c.Context(), c.Params("id"), in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste completado"})
}

// ListByBatch godoc
// @Summary      Listar los ajustes contra un lote
// @Tags         adjustments
// @Produce      json
// @Param        batch_id  query  string  true  "ID del lote"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) ListByBatch(c *fiber.Ctx) error {
	batchID := c.Query("batch_id")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id es obligatorio"})
	}
	adjustments, err := h.uc.ListByBatch(c.Context(), batchID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.FromAdjustment(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}
