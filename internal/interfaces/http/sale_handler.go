package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

// SaleHandler recibe los eventos de venta reportados por el subsistema de
// ventas. El motor no inicia ventas; solo las registra contra el lote.
type SaleHandler struct {
	uc *ledger.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *ledger.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar un evento de venta completada contra un lote
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "batch_id, quantity, reference"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.RecordSaleInput{
		BatchID:   in.BatchID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Actor:     in.Actor,
	}
	if in.SoldAt != nil {
		input.SoldAt = *in.SoldAt
	}
	sale, err := h.uc.RecordSale(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSale(sale))
}

// ListByBatch godoc
// @Summary      Listar los eventos de venta contra un lote
// @Tags         sales
// @Produce      json
// @Param        batch_id  query  string  true  "ID del lote"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) ListByBatch(c *fiber.Ctx) error {
	batchID := c.Query("batch_id")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id es obligatorio"})
	}
	sales, err := h.uc.ListByBatch(c.Context(), batchID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.FromSale(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}
