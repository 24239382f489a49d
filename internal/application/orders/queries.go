package orders

import (
	"context"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// QueryUseCase lecturas de pedidos (fuera de transacciones).
type QueryUseCase struct {
	orderRepo repository.OrderRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orderRepo repository.OrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// GetOrder devuelve el pedido con su sub-libro de pagos.
func (uc *QueryUseCase) GetOrder(ctx context.Context, id string) (*entity.Order, []*entity.Payment, error) {
	if id == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	payments, err := uc.orderRepo.ListPayments(id)
	if err != nil {
		return nil, nil, err
	}
	return order, payments, nil
}

// ListOrders lista pedidos paginados.
func (uc *QueryUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(limit, offset)
}
