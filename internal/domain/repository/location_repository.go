package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// LocationRepository define el puerto de lectura del registro de ubicaciones
// (bodegas y puntos de venta; colaborador externo).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
}
