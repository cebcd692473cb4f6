package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ProductRepo implementa ProductRepository sobre el almacén en memoria.
type ProductRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// NewProductRepo crea el repositorio de productos en memoria.
func NewProductRepo(store *Store) *ProductRepo {
	return &ProductRepo{s: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	defer r.s.enter(false)()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.s.products[product.ID]; ok {
		return fmt.Errorf("create product %s: %w", product.ID, domain.ErrDuplicate)
	}
	stored := *product
	r.s.products[product.ID] = &stored
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.s.enter(false)()
	product, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

// LocationRepo implementa LocationRepository sobre el almacén en memoria.
type LocationRepo struct {
	s *Store
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

// NewLocationRepo crea el repositorio de ubicaciones en memoria.
func NewLocationRepo(store *Store) *LocationRepo {
	return &LocationRepo{s: store}
}

func (r *LocationRepo) Create(location *entity.Location) error {
	defer r.s.enter(false)()
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	if _, ok := r.s.locations[location.ID]; ok {
		return fmt.Errorf("create location %s: %w", location.ID, domain.ErrDuplicate)
	}
	stored := *location
	r.s.locations[location.ID] = &stored
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	defer r.s.enter(false)()
	location, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	copied := *location
	return &copied, nil
}
