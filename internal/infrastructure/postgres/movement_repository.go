package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = "id, material_id, type, quantity, unit_measure, unit_cost, reason, order_id, reference, created_by, created_at"

// Create persiste una entrada del libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MaterialID, movement.Type, movement.Quantity,
		movement.UnitMeasure, movement.UnitCost, movement.Reason,
		movement.OrderID, movement.Reference, createdBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByMaterial devuelve los movimientos de un material en orden cronológico
// ascendente; (created_at, id) da un orden total determinista para el kardex.
func (r *MovementRepo) ListByMaterial(materialID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE material_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(query, materialID)
}

// ListByOrder devuelve los movimientos generados por un pedido.
func (r *MovementRepo) ListByOrder(orderID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(query, orderID)
}

func (r *MovementRepo) list(query string, arg any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.UnitMeasure,
			&m.UnitCost, &m.Reason, &m.OrderID, &m.Reference, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
