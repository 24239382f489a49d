package inventory

import (
	"context"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el ajuste del stock y el
// registro en el libro de movimientos sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
	) error) error
}
