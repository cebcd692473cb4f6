package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// respondError traduce la taxonomía de errores del dominio a HTTP. Los errores
// estructurados llevan su contexto en Detail para que el cliente pueda mostrar
// el desglose sin parsear mensajes.
func respondError(c *fiber.Ctx, err error) error {
	var immutable *domain.ImmutableFieldError
	if errors.As(err, &immutable) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "IMMUTABLE_FIELD",
			Message: immutable.Error(),
			Detail: fiber.Map{
				"batch_id": immutable.BatchID,
				"field":    immutable.Field,
			},
		})
	}

	var insufficient *domain.InsufficientAvailabilityError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_AVAILABILITY",
			Message: insufficient.Error(),
			Detail: fiber.Map{
				"batch_id":   insufficient.BatchID,
				"product_id": insufficient.ProductID,
				"breakdown":  insufficient.Breakdown,
				"available":  insufficient.Breakdown.Available(),
				"requested":  insufficient.Requested,
				"shortfall":  insufficient.Shortfall(),
			},
		})
	}

	var transition *domain.InvalidStateTransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_STATE_TRANSITION",
			Message: transition.Error(),
			Detail: fiber.Map{
				"entity": transition.Entity,
				"id":     transition.ID,
				"from":   transition.From,
				"to":     transition.To,
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia; reintente la operación"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
