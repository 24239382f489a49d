package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para materiales.
// UpdateQuantity solo debe invocarse dentro de una transacción que también
// registre el movimiento correspondiente (coordinador o libro de movimientos).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	UpdateQuantity(id string, quantity decimal.Decimal) error
}
