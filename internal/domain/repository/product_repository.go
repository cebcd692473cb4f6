package repository

import "github.com/jhoicas/Inventario-ledger/internal/domain/entity"

// ProductRepository define el puerto de lectura del registro de productos
// (colaborador externo; aquí solo se resuelve identidad y se sincroniza).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
}
