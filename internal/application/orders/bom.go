package orders

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// Requirement cantidad requerida de un material para un pedido completo.
type Requirement struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// ResolveRequirements calcula, para un producto y una cantidad de pedido, la
// cantidad requerida de cada material: requerido = (cantidad por unidad) × N.
// Multiplicación decimal sin redondeo (las cantidades físicas no se redondean).
// Devuelve el producto para que el caller tome el precio snapshot.
// Los requerimientos salen ordenados por MaterialID; los callers bloquean las
// filas en ese orden para evitar interbloqueos.
func ResolveRequirements(productRepo repository.ProductRepository, productID string, quantity int) (*entity.Product, []Requirement, error) {
	if productID == "" || quantity < 1 {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	n := decimal.NewFromInt(int64(quantity))
	reqs := make([]Requirement, 0, len(product.Materials))
	for _, entry := range product.Materials {
		reqs = append(reqs, Requirement{
			MaterialID: entry.MaterialID,
			Quantity:   entry.QuantityPerUnit.Mul(n),
		})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].MaterialID < reqs[j].MaterialID })
	return product, reqs, nil
}
