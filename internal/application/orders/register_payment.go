package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// RegisterPaymentUseCase registra abonos contra un pedido. La fila del pedido
// se bloquea (SELECT FOR UPDATE) para serializar pagos concurrentes y no
// perder actualizaciones del acumulado. No toca el stock de materiales.
type RegisterPaymentUseCase struct {
	txRunner TxRunner
}

// NewRegisterPaymentUseCase construye el caso de uso.
func NewRegisterPaymentUseCase(txRunner TxRunner) *RegisterPaymentUseCase {
	return &RegisterPaymentUseCase{txRunner: txRunner}
}

// RegisterPaymentInput entrada para registrar un abono.
type RegisterPaymentInput struct {
	OrderID string
	Amount  decimal.Decimal // > 0, <= saldo pendiente
	Method  string
	Note    string
}

// RegisterPayment agrega el abono al sub-libro de pagos, recalcula el
// acumulado y deriva el estado de pago. El abono no puede superar el saldo
// pendiente (Paid nunca supera Total) ni aplicarse a un pedido cancelado.
func (uc *RegisterPaymentUseCase) RegisterPayment(ctx context.Context, input RegisterPaymentInput) (*entity.Order, error) {
	if input.OrderID == "" || !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.Order

	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.MaterialRepository,
		_ repository.MovementRepository,
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.State == entity.OrderCancelled {
			return &domain.InvalidTransitionError{
				Current:   order.State,
				Attempted: "REGISTRAR_PAGO",
			}
		}
		if input.Amount.GreaterThan(order.Remaining()) {
			return domain.ErrInvalidInput
		}

		if err := orderRepo.CreatePayment(&entity.Payment{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Amount:    input.Amount,
			Method:    input.Method,
			Note:      input.Note,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		order.Paid = order.Paid.Add(input.Amount)
		order.PaymentStatus = entity.PaymentStatusFor(order.Total, order.Paid)
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
