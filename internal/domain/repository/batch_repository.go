package repository

import (
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de stock.
// El lote nunca se borra (se retiene para auditoría); el único campo mutable es
// IntakeQuantity y solo mientras Referenced sea false.
type BatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	// GetForUpdate bloquea la fila del lote para la transacción en curso
	// (SELECT FOR UPDATE). Es el punto de serialización de toda completación.
	GetForUpdate(id string) (*entity.StockBatch, error)
	// UpdateIntakeQuantity reescribe la cantidad de ingreso. El caso de uso ya
	// verificó que el lote no esté referenciado, bajo el mismo bloqueo.
	UpdateIntakeQuantity(id string, quantity int64, at time.Time) error
	// MarkReferenced fija la bandera de inmutabilidad. Se invoca dentro de la
	// transacción que compromete el primer evento contra el lote.
	MarkReferenced(id string, at time.Time) error
	// FindActiveByProductAndLocation localiza el lote destino existente para un
	// producto en una ubicación (traslados entrantes).
	FindActiveByProductAndLocation(productID, locationID string) (*entity.StockBatch, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.StockBatch, error)
}
