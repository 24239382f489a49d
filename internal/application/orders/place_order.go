package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// Motivos estándar de los movimientos generados por pedidos.
const (
	reasonOrderConsumption = "consumo pedido"
	reasonOrderReturn      = "devolución por cancelación"
)

// PlaceOrderUseCase crea un pedido descontando el stock de materiales según
// la lista de materiales (BOM) del producto, todo en una sola transacción.
// El descuento inicial queda en el libro de movimientos (una SALIDA por
// material, con referencia al pedido), de modo que el kardex concilia siempre.
type PlaceOrderUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner, customerRepo: customerRepo}
}

// PlaceOrderInput entrada para crear un pedido.
type PlaceOrderInput struct {
	CustomerID     string
	ProductID      string
	Quantity       int             // >= 1
	InitialPayment decimal.Decimal // >= 0; se limita al total
	PaymentMethod  string
	PaymentNote    string
	PromisedDate   *time.Time
	CreatedBy      string
}

// PlaceOrder crea el pedido y descuenta cada material requerido (SALIDA en el
// libro + ajuste del contador), de forma atómica: si un material no alcanza,
// nada se descuenta y no queda pedido.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error) {
	if input.CustomerID == "" || input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if input.InitialPayment.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// El cliente debe existir (colaborador de solo lectura)
	customer, err := uc.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	var order *entity.Order

	err = uc.txRunner.RunOrder(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		// BOM re-leído dentro de la tx para una vista consistente
		product, reqs, err := ResolveRequirements(productRepo, input.ProductID, input.Quantity)
		if err != nil {
			return err
		}

		// Totales: el dinero se redondea a 2 decimales, las cantidades no
		total := product.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)
		paid := input.InitialPayment
		if paid.GreaterThan(total) {
			paid = total
		}

		// Los movimientos referencian al pedido por FK no diferida: la fila
		// del pedido va primero. Si un material falta, el rollback de la tx
		// se lleva también esta fila.
		order = &entity.Order{
			ID:            orderID,
			CustomerID:    input.CustomerID,
			ProductID:     input.ProductID,
			Quantity:      input.Quantity,
			UnitPrice:     product.UnitPrice,
			Total:         total,
			Paid:          paid,
			PaymentStatus: entity.PaymentStatusFor(total, paid),
			State:         entity.OrderPending,
			PromisedDate:  input.PromisedDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// Una SALIDA por material; cualquier faltante aborta toda la tx
		for _, req := range reqs {
			if _, err := inventory.ApplyInTx(materialRepo, movRepo, inventory.MovementInput{
				MaterialID: req.MaterialID,
				Type:       entity.MovementSalida,
				Quantity:   req.Quantity,
				Reason:     reasonOrderConsumption,
				OrderID:    &orderID,
				CreatedBy:  input.CreatedBy,
			}, now); err != nil {
				return err
			}
		}

		if paid.GreaterThan(decimal.Zero) {
			return orderRepo.CreatePayment(&entity.Payment{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				Amount:    paid,
				Method:    input.PaymentMethod,
				Note:      input.PaymentNote,
				CreatedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
