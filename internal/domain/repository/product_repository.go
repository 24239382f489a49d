package repository

import "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos
// y su lista de materiales (BOM).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID devuelve el producto con su BOM cargado.
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
