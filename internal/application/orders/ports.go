package orders

import (
	"context"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el coordinador de pedidos. O todo el flujo
// (verificar stock, descontar, crear/actualizar pedido) se confirma junto,
// o nada se aplica.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
