package entity

import "time"

// Tipos de ajuste de inventario.
const (
	AdjustmentTypeDamage     = "DAMAGE"     // daño (negativo)
	AdjustmentTypeShrinkage  = "SHRINKAGE"  // merma (negativo)
	AdjustmentTypeFound      = "FOUND"      // stock encontrado (positivo)
	AdjustmentTypeCorrection = "CORRECTION" // corrección manual (cualquier signo)
)

// Estados del ajuste. APPROVED y COMPLETED se distinguen porque aprobar es una
// decisión y completar es el punto en que el delta entra en el cálculo de
// disponibilidad (flujo aprobar-luego-aplicar a dos personas).
const (
	AdjustmentStatusDraft     = "DRAFT"
	AdjustmentStatusPending   = "PENDING"
	AdjustmentStatusApproved  = "APPROVED"
	AdjustmentStatusCompleted = "COMPLETED"
	AdjustmentStatusRejected  = "REJECTED"
)

// adjustmentTransitions tabla cerrada de transiciones permitidas.
// DRAFT → PENDING → APPROVED → COMPLETED, con PENDING → REJECTED como rama
// terminal alterna. COMPLETED y REJECTED son terminales.
var adjustmentTransitions = map[string][]string{
	AdjustmentStatusDraft:    {AdjustmentStatusPending},
	AdjustmentStatusPending:  {AdjustmentStatusApproved, AdjustmentStatusRejected},
	AdjustmentStatusApproved: {AdjustmentStatusCompleted},
}

// Adjustment es un delta de cantidad con signo contra exactamente un lote.
// Completarlo jamás muta StockBatch.IntakeQuantity: el delta se almacena y se
// suma en tiempo de lectura.
type Adjustment struct {
	ID             string
	BatchID        string
	Type           string
	Quantity       int64 // positivo = encontrado/corrección+, negativo = daño/merma/corrección−
	Reason         string
	Status         string
	ApprovedBy     string
	RejectedBy     string
	RejectedReason string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidAdjustmentType indica si el tipo de ajuste es conocido.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentTypeDamage, AdjustmentTypeShrinkage, AdjustmentTypeFound, AdjustmentTypeCorrection:
		return true
	}
	return false
}

// ValidAdjustmentSign valida la coherencia signo/tipo: DAMAGE y SHRINKAGE deben
// ser negativos, FOUND positivo, CORRECTION cualquier signo distinto de cero.
func ValidAdjustmentSign(t string, quantity int64) bool {
	if quantity == 0 {
		return false
	}
	switch t {
	case AdjustmentTypeDamage, AdjustmentTypeShrinkage:
		return quantity < 0
	case AdjustmentTypeFound:
		return quantity > 0
	case AdjustmentTypeCorrection:
		return true
	}
	return false
}

// CanTransition indica si el paso de estado from → to está en la tabla.
func (a *Adjustment) CanTransition(to string) bool {
	for _, next := range adjustmentTransitions[a.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el ajuste ya no admite cambios.
func (a *Adjustment) IsTerminal() bool {
	return a.Status == AdjustmentStatusCompleted || a.Status == AdjustmentStatusRejected
}
