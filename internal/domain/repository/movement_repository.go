package repository

import "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"

// MovementRepository define el puerto del libro de movimientos (append-only:
// sin Update ni Delete).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByMaterial devuelve los movimientos de un material en orden
	// cronológico ascendente (created_at, id) para reconstruir el kardex.
	ListByMaterial(materialID string) ([]*entity.Movement, error)
	ListByOrder(orderID string) ([]*entity.Movement, error)
}
