package repository

import "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos y su
// sub-libro de pagos.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) para
	// serializar pagos y transiciones concurrentes.
	GetForUpdate(id string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	CreatePayment(payment *entity.Payment) error
	ListPayments(orderID string) ([]*entity.Payment, error)
}
