package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// El snapshot de materiales consumidos se guarda como JSONB en la misma fila.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_id, product_id, quantity, unit_price, total, paid,
		payment_status, state, promised_date, delivered_at, consumption_recorded,
		consumed_materials, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var consumed []byte
	err := row.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.UnitPrice,
		&o.Total, &o.Paid, &o.PaymentStatus, &o.State, &o.PromisedDate, &o.DeliveredAt,
		&o.ConsumptionRecorded, &consumed, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(consumed) > 0 {
		if err := json.Unmarshal(consumed, &o.ConsumedMaterials); err != nil {
			return nil, fmt.Errorf("decode consumed_materials: %w", err)
		}
	}
	return &o, nil
}

func marshalConsumed(o *entity.Order) ([]byte, error) {
	if len(o.ConsumedMaterials) == 0 {
		return nil, nil
	}
	return json.Marshal(o.ConsumedMaterials)
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	consumed, err := marshalConsumed(order)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.ProductID, order.Quantity, order.UnitPrice,
		order.Total, order.Paid, order.PaymentStatus, order.State, order.PromisedDate,
		order.DeliveredAt, order.ConsumptionRecorded, consumed, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE) para
// serializar pagos, transiciones y cancelaciones concurrentes.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// List lista pedidos del más reciente al más antiguo.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var consumed []byte
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.Quantity, &o.UnitPrice,
			&o.Total, &o.Paid, &o.PaymentStatus, &o.State, &o.PromisedDate, &o.DeliveredAt,
			&o.ConsumptionRecorded, &consumed, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if len(consumed) > 0 {
			if err := json.Unmarshal(consumed, &o.ConsumedMaterials); err != nil {
				return nil, fmt.Errorf("decode consumed_materials: %w", err)
			}
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables del pedido (pagos, estado, entrega).
func (r *OrderRepo) Update(order *entity.Order) error {
	consumed, err := marshalConsumed(order)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders
		SET paid = $2, payment_status = $3, state = $4, promised_date = $5,
			delivered_at = $6, consumption_recorded = $7, consumed_materials = $8,
			updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Paid, order.PaymentStatus, order.State, order.PromisedDate,
		order.DeliveredAt, order.ConsumptionRecorded, consumed, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order: fila no encontrada")
	}
	return nil
}

// CreatePayment agrega una entrada al sub-libro de pagos.
func (r *OrderRepo) CreatePayment(payment *entity.Payment) error {
	query := `
		INSERT INTO order_payments (id, order_id, amount, method, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrderID, payment.Amount, payment.Method, payment.Note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments devuelve los pagos de un pedido en orden cronológico.
func (r *OrderRepo) ListPayments(orderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, amount, method, note, created_at
		FROM order_payments WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
