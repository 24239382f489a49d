package orders

import (
	"context"
	"time"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// TransitionUseCase aplica las transiciones manuales del ciclo de vida:
// PENDIENTE -> EN_PROCESO y EN_PROCESO -> ENTREGADO. La cancelación tiene su
// propio caso de uso porque restaura stock.
type TransitionUseCase struct {
	txRunner TxRunner
}

// NewTransitionUseCase construye el caso de uso.
func NewTransitionUseCase(txRunner TxRunner) *TransitionUseCase {
	return &TransitionUseCase{txRunner: txRunner}
}

// Transition mueve el pedido al estado destino. Al entregar se fija la fecha
// de entrega y, una sola vez (flag de idempotencia), se puebla el snapshot de
// materiales consumidos a partir de la BOM. La entrega no vuelve a descontar
// stock: el único descuento es el de la creación del pedido.
func (uc *TransitionUseCase) Transition(ctx context.Context, orderID, target string) (*entity.Order, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	if target != entity.OrderInProgress && target != entity.OrderDelivered {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.Order

	err := uc.txRunner.RunOrder(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.MovementRepository,
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
		if !entity.CanTransition(order.State, target) {
			return &domain.InvalidTransitionError{Current: order.State, Attempted: target}
		}

		order.State = target
		if target == entity.OrderDelivered {
			order.DeliveredAt = &now
			if !order.ConsumptionRecorded {
				consumed, err := uc.consumedSnapshot(materialRepo, productRepo, order)
				if err != nil {
					return err
				}
				order.ConsumedMaterials = consumed
				order.ConsumptionRecorded = true
			}
		}
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// consumedSnapshot arma el detalle de materiales consumidos por el pedido
// (BOM × cantidad, con nombre y unidad del material).
func (uc *TransitionUseCase) consumedSnapshot(
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	order *entity.Order,
) ([]entity.ConsumedMaterial, error) {
	_, reqs, err := ResolveRequirements(productRepo, order.ProductID, order.Quantity)
	if err != nil {
		return nil, err
	}
	consumed := make([]entity.ConsumedMaterial, 0, len(reqs))
	for _, req := range reqs {
		material, err := materialRepo.GetByID(req.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
		consumed = append(consumed, entity.ConsumedMaterial{
			MaterialID:  material.ID,
			Name:        material.Name,
			Quantity:    req.Quantity,
			UnitMeasure: material.UnitMeasure,
		})
	}
	return consumed, nil
}
