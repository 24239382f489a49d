package orders

import (
	"context"
	"time"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// CancelOrderUseCase cancela un pedido devolviendo al stock lo descontado al
// crearlo: un INGRESO por material (misma BOM, misma cantidad) más el cambio
// de estado, todo en una transacción.
type CancelOrderUseCase struct {
	txRunner TxRunner
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner TxRunner) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner}
}

// CancelOrder restaura el stock y marca el pedido CANCELADO.
// Cancelar un pedido ya cancelado es idempotente: devuelve el pedido sin
// cambios. Cancelar un pedido ENTREGADO no está permitido.
func (uc *CancelOrderUseCase) CancelOrder(ctx context.Context, orderID, cancelledBy string) (*entity.Order, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.Order

	err := uc.txRunner.RunOrder(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.State == entity.OrderCancelled {
			return nil // idempotente: sin cambios
		}
		if order.State == entity.OrderDelivered {
			return &domain.InvalidTransitionError{
				Current:   order.State,
				Attempted: entity.OrderCancelled,
			}
		}

		// Re-resuelve la BOM exactamente como al crear el pedido
		_, reqs, err := ResolveRequirements(productRepo, order.ProductID, order.Quantity)
		if err != nil {
			return err
		}
		for _, req := range reqs {
			if _, err := inventory.ApplyInTx(materialRepo, movRepo, inventory.MovementInput{
				MaterialID: req.MaterialID,
				Type:       entity.MovementIngreso,
				Quantity:   req.Quantity,
				Reason:     reasonOrderReturn,
				OrderID:    &order.ID,
				CreatedBy:  cancelledBy,
			}, now); err != nil {
				return err
			}
		}

		order.State = entity.OrderCancelled
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
