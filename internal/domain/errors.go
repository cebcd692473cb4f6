package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// ErrImmutableField: intento de editar intake_quantity en un lote ya referenciado.
	// Nunca se reintenta; el registro de ingreso es inmutable una vez que existe
	// cualquier ajuste, traslado o venta contra el lote.
	ErrImmutableField = errors.New("campo inmutable: el lote ya está referenciado")

	// ErrInsufficientAvailability: el delta solicitado excede la disponibilidad derivada.
	ErrInsufficientAvailability = errors.New("disponibilidad insuficiente")

	// ErrInvalidStateTransition: operación sobre una entidad cuyo estado no la permite.
	ErrInvalidStateTransition = errors.New("transición de estado inválida")

	// ErrConcurrencyConflict: fallo al adquirir bloqueo o conflicto de serialización.
	// Transitorio; el caller puede reintentar con backoff.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
)

// ImmutableFieldError detalla un intento de edición sobre un lote referenciado.
type ImmutableFieldError struct {
	BatchID string
	Field   string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("campo inmutable %q: el lote %s ya está referenciado por ajustes, traslados o ventas", e.Field, e.BatchID)
}

func (e *ImmutableFieldError) Unwrap() error { return ErrImmutableField }

// AvailabilityBreakdown descompone la cantidad disponible de un lote en sus términos.
// Se adjunta a los errores y al reporte de conciliación para que la capa operadora
// pueda renderizar un mensaje accionable sin volver a consultar el motor.
type AvailabilityBreakdown struct {
	RecordedIntake int64 `json:"recorded_intake"`
	AdjustmentSum  int64 `json:"adjustment_sum"`
	TransferOutSum int64 `json:"transfer_out_sum"`
	TransferInSum  int64 `json:"transfer_in_sum"`
	SaleSum        int64 `json:"sale_sum"`
}

// Available aplica la fórmula de disponibilidad:
// intake + Σajustes − Σtraslados-salida + Σtraslados-entrada − Σventas.
func (b AvailabilityBreakdown) Available() int64 {
	return b.RecordedIntake + b.AdjustmentSum - b.TransferOutSum + b.TransferInSum - b.SaleSum
}

// InsufficientAvailabilityError detalla un rechazo por disponibilidad insuficiente.
type InsufficientAvailabilityError struct {
	BatchID   string
	ProductID string
	Breakdown AvailabilityBreakdown
	Requested int64
}

func (e *InsufficientAvailabilityError) Error() string {
	available := e.Breakdown.Available()
	return fmt.Sprintf("disponibilidad insuficiente en lote %s (producto %s): disponible %d, solicitado %d, faltante %d",
		e.BatchID, e.ProductID, available, e.Requested, e.Requested-available)
}

func (e *InsufficientAvailabilityError) Unwrap() error { return ErrInsufficientAvailability }

// Shortfall devuelve cuánto falta para cubrir lo solicitado.
func (e *InsufficientAvailabilityError) Shortfall() int64 {
	return e.Requested - e.Breakdown.Available()
}

// InvalidStateTransitionError detalla una transición de estado no permitida.
type InvalidStateTransitionError struct {
	Entity string // "adjustment" o "transfer"
	ID     string
	From   string
	To     string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transición inválida en %s %s: %s → %s", e.Entity, e.ID, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// IsRetryable indica si el error puede resolverse reintentando (contención transitoria).
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
