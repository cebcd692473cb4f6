package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// TransferHandler maneja las peticiones HTTP del motor de traslados.
type TransferHandler struct {
	uc *ledger.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *ledger.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear un traslado multi-ítem en PENDING
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_location_id, to_location_id, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]ledger.TransferItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, ledger.TransferItemInput{
			ProductID:     item.ProductID,
			SourceBatchID: item.SourceBatchID,
			Quantity:      item.Quantity,
		})
	}
	transfer, err := h.uc.Create(c.Context(), ledger.CreateTransferInput{
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Items:          items,
		CreatedBy:      in.Actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(transfer))
}

// GetByID godoc
// @Summary      Consultar un traslado con sus ítems
// @Tags         transfers
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransfer(transfer))
}

// Dispatch godoc
// @Summary      Despachar un traslado PENDING (pasa a IN_TRANSIT y congela los ítems)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ActorRequest  true  "actor"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida"
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Dispatch(c.Context(), c.Params("id"), in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado en tránsito"})
}

// Complete godoc
// @Summary      Completar un traslado IN_TRANSIT (compromete salidas y entradas atómicamente)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ActorRequest  true  "actor"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse "transición inválida o disponibilidad insuficiente"
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Complete(c.Context(), c.Params("id"), in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado completado"})
}

// Cancel godoc
// @Summary      Cancelar un traslado no completado (idempotente)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ActorRequest  true  "actor"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse "el traslado ya fue completado"
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.ActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Cancel(c.Context(), c.Params("id"), in.Actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransfer(transfer))
}
