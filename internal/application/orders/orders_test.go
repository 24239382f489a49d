package orders_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/orders"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	domaininv "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner toma un snapshot
// antes de ejecutar y lo restaura si fn falla, y serializa transacciones con
// un mutex (equivalente en memoria de los bloqueos de fila).
// ──────────────────────────────────────────────────────────────────────────────

type orderStore struct {
	mu        sync.Mutex
	materials map[string]*entity.Material
	movements []*entity.Movement
	orders    map[string]*entity.Order
	payments  []*entity.Payment
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
}

func newOrderStore() *orderStore {
	return &orderStore{
		materials: make(map[string]*entity.Material),
		orders:    make(map[string]*entity.Order),
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
	}
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.ConsumedMaterials = append([]entity.ConsumedMaterial(nil), o.ConsumedMaterials...)
	return &cp
}

func (s *orderStore) snapshot() *orderStore {
	cp := newOrderStore()
	for id, m := range s.materials {
		clone := *m
		cp.materials[id] = &clone
	}
	for id, o := range s.orders {
		cp.orders[id] = cloneOrder(o)
	}
	cp.movements = append([]*entity.Movement(nil), s.movements...)
	cp.payments = append([]*entity.Payment(nil), s.payments...)
	cp.products = s.products
	cp.customers = s.customers
	return cp
}

func (s *orderStore) restore(snap *orderStore) {
	s.materials = snap.materials
	s.orders = snap.orders
	s.movements = snap.movements
	s.payments = snap.payments
}

type stubMaterialRepo struct{ store *orderStore }

func (r *stubMaterialRepo) Create(m *entity.Material) error { r.store.materials[m.ID] = m; return nil }
func (r *stubMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.store.materials[id], nil
}
func (r *stubMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.store.materials[id], nil
}
func (r *stubMaterialRepo) List(limit, offset int) ([]*entity.Material, error) { return nil, nil }
func (r *stubMaterialRepo) Update(m *entity.Material) error                    { return nil }
func (r *stubMaterialRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	m, ok := r.store.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Quantity = qty
	return nil
}

type stubMovementRepo struct{ store *orderStore }

func (r *stubMovementRepo) Create(mov *entity.Movement) error {
	// FK movements.order_id (no diferida): el pedido referenciado debe
	// existir ya dentro de la misma transacción.
	if mov.OrderID != nil {
		if _, ok := r.store.orders[*mov.OrderID]; !ok {
			return fmt.Errorf("movimiento referencia un pedido inexistente: %s", *mov.OrderID)
		}
	}
	r.store.movements = append(r.store.movements, mov)
	return nil
}
func (r *stubMovementRepo) ListByMaterial(materialID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMovementRepo) ListByOrder(orderID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubOrderRepo struct{ store *orderStore }

func (r *stubOrderRepo) Create(o *entity.Order) error {
	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}
func (r *stubOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}
func (r *stubOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }
func (r *stubOrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.store.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}
func (r *stubOrderRepo) Update(o *entity.Order) error {
	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}
func (r *stubOrderRepo) CreatePayment(p *entity.Payment) error {
	r.store.payments = append(r.store.payments, p)
	return nil
}
func (r *stubOrderRepo) ListPayments(orderID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.store.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubProductRepo struct{ store *orderStore }

func (r *stubProductRepo) Create(p *entity.Product) error { r.store.products[p.ID] = p; return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *stubProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(p *entity.Product) error                    { return nil }

type stubCustomerRepo struct{ store *orderStore }

func (r *stubCustomerRepo) Create(c *entity.Customer) error { r.store.customers[c.ID] = c; return nil }
func (r *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.store.customers[id], nil
}
func (r *stubCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *stubCustomerRepo) Update(c *entity.Customer) error                    { return nil }

type stubTxRunner struct{ store *orderStore }

func (tr *stubTxRunner) RunOrder(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tr.store.mu.Lock()
	defer tr.store.mu.Unlock()
	snap := tr.store.snapshot()
	err := fn(
		&stubMaterialRepo{store: tr.store},
		&stubMovementRepo{store: tr.store},
		&stubOrderRepo{store: tr.store},
		&stubProductRepo{store: tr.store},
	)
	if err != nil {
		tr.store.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: tarjetas de presentación que consumen tinta negra.
//   - Tinta Negra: 100 litros en stock
//   - Producto "Tarjetas x100": 3 litros por unidad, Bs 50 la unidad
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store           *orderStore
	place           *orders.PlaceOrderUseCase
	cancel          *orders.CancelOrderUseCase
	registerPayment *orders.RegisterPaymentUseCase
	transition      *orders.TransitionUseCase
	queries         *orders.QueryUseCase
}

func newFixture() *fixture {
	store := newOrderStore()
	store.materials["mat-tinta"] = &entity.Material{
		ID:          "mat-tinta",
		Name:        "Tinta Negra",
		UnitMeasure: "litro",
		Quantity:    decimal.NewFromInt(100),
	}
	store.products["prod-tarjetas"] = &entity.Product{
		ID:        "prod-tarjetas",
		Name:      "Tarjetas x100",
		UnitPrice: decimal.NewFromInt(50),
		Materials: []entity.BOMEntry{
			{MaterialID: "mat-tinta", QuantityPerUnit: decimal.NewFromInt(3)},
		},
	}
	store.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Juan Pérez"}

	runner := &stubTxRunner{store: store}
	return &fixture{
		store:           store,
		place:           orders.NewPlaceOrderUseCase(runner, &stubCustomerRepo{store: store}),
		cancel:          orders.NewCancelOrderUseCase(runner),
		registerPayment: orders.NewRegisterPaymentUseCase(runner),
		transition:      orders.NewTransitionUseCase(runner),
		queries:         orders.NewQueryUseCase(&stubOrderRepo{store: store}),
	}
}

func (f *fixture) stock(id string) decimal.Decimal {
	return f.store.materials[id].Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_DescuentaStockYCreaPedido(t *testing.T) {
	f := newFixture()

	order, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID:     "cli-1",
		ProductID:      "prod-tarjetas",
		Quantity:       10,
		InitialPayment: decimal.NewFromInt(200),
		PaymentMethod:  "efectivo",
		CreatedBy:      "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// 10 unidades × 3 litros = 30 litros descontados
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(70)))

	assert.Equal(t, entity.OrderPending, order.State)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(500)), "total = 50 × 10")
	assert.True(t, order.Paid.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, entity.PaymentPartial, order.PaymentStatus)
	assert.True(t, order.Remaining().Equal(decimal.NewFromInt(300)))

	// El descuento queda en el libro como SALIDA con referencia al pedido
	require.Len(t, f.store.movements, 1)
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementSalida, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, mov.OrderID)
	assert.Equal(t, order.ID, *mov.OrderID)

	// Pago inicial registrado en el sub-libro
	require.Len(t, f.store.payments, 1)
	assert.True(t, f.store.payments[0].Amount.Equal(decimal.NewFromInt(200)))
}

// La fila del pedido debe escribirse antes que sus SALIDAs: la FK
// movements.order_id no es diferida y el fake la hace cumplir, igual que
// Postgres al cierre de cada sentencia.
func TestPlaceOrder_PedidoPrecedeASusMovimientos(t *testing.T) {
	f := newFixture()

	order, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err, "con stock de sobra la creación no puede fallar por la FK")

	require.Len(t, f.store.movements, 1)
	require.NotNil(t, f.store.movements[0].OrderID)
	_, ok := f.store.orders[*f.store.movements[0].OrderID]
	assert.True(t, ok, "cada movimiento referencia un pedido ya persistido")
	assert.Equal(t, order.ID, *f.store.movements[0].OrderID)
}

func TestPlaceOrder_SinPagoInicial(t *testing.T) {
	f := newFixture()

	order, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentNone, order.PaymentStatus)
	assert.Empty(t, f.store.payments, "sin pago inicial no hay entrada en el sub-libro")
}

func TestPlaceOrder_PagoInicialMayorAlTotal_SeLimita(t *testing.T) {
	f := newFixture()

	order, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID:     "cli-1",
		ProductID:      "prod-tarjetas",
		Quantity:       10,
		InitialPayment: decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	assert.True(t, order.Paid.Equal(decimal.NewFromInt(500)), "Paid nunca supera Total")
	assert.Equal(t, entity.PaymentPaid, order.PaymentStatus)
}

// Si un material no alcanza, no se descuenta ninguno y no se crea el pedido.
func TestPlaceOrder_StockInsuficiente_Atomico(t *testing.T) {
	f := newFixture()
	// Segundo material casi agotado
	f.store.materials["mat-papel"] = &entity.Material{
		ID:          "mat-papel",
		Name:        "Papel Couché",
		UnitMeasure: "unidad",
		Quantity:    decimal.NewFromInt(5),
	}
	f.store.products["prod-tarjetas"].Materials = []entity.BOMEntry{
		{MaterialID: "mat-papel", QuantityPerUnit: decimal.NewFromInt(1)},
		{MaterialID: "mat-tinta", QuantityPerUnit: decimal.NewFromInt(3)},
	}

	_, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10, // requiere 10 de papel, hay 5
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(100)),
		"la tinta no debe descontarse si el papel falla")
	assert.True(t, f.stock("mat-papel").Equal(decimal.NewFromInt(5)))
	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.store.orders, "no debe quedar pedido a medias")
}

func TestPlaceOrder_ClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "no-existe",
		ProductID:  "prod-tarjetas",
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(100)))
}

// Pedidos concurrentes compitiendo por el mismo material: con 100 litros y
// 30 por pedido, exactamente 3 pueden confirmarse.
func TestPlaceOrder_Concurrente_NoSobrevende(t *testing.T) {
	f := newFixture()
	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
				CustomerID: "cli-1",
				ProductID:  "prod-tarjetas",
				Quantity:   10,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 3, succeeded, "floor(100/30) = 3 pedidos caben")
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.store.orders, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_RestauraStock(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err)
	require.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(70)))

	cancelled, err := f.cancel.CancelOrder(context.Background(), placed.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.State)
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(100)),
		"cancelar devuelve exactamente lo descontado")

	// Libro: SALIDA al crear + INGRESO al cancelar, ambos referenciando el pedido
	require.Len(t, f.store.movements, 2)
	assert.Equal(t, entity.MovementSalida, f.store.movements[0].Type)
	assert.Equal(t, entity.MovementIngreso, f.store.movements[1].Type)
	for _, mov := range f.store.movements {
		require.NotNil(t, mov.OrderID)
		assert.Equal(t, placed.ID, *mov.OrderID)
	}

	// Conciliación: la SALIDA y el INGRESO del pedido pliegan a cero neto,
	// el libro queda donde empezó
	assert.True(t, domaininv.FinalBalance(f.store.movements).IsZero())
}

func TestCancelOrder_Idempotente(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err)

	_, err = f.cancel.CancelOrder(context.Background(), placed.ID, "user-1")
	require.NoError(t, err)
	again, err := f.cancel.CancelOrder(context.Background(), placed.ID, "user-1")
	require.NoError(t, err, "cancelar dos veces no es error")

	assert.Equal(t, entity.OrderCancelled, again.State)
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(100)),
		"la segunda cancelación no debe devolver stock otra vez")
	assert.Len(t, f.store.movements, 2, "sin INGRESO duplicado")
}

func TestCancelOrder_EntregadoRechazado(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err)

	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderInProgress)
	require.NoError(t, err)
	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderDelivered)
	require.NoError(t, err)

	_, err = f.cancel.CancelOrder(context.Background(), placed.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(70)),
		"el stock de un pedido entregado no se devuelve")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPayment_AcumulaYDerivaEstado(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10, // total 500
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentNone, placed.PaymentStatus)

	after, err := f.registerPayment.RegisterPayment(context.Background(), orders.RegisterPaymentInput{
		OrderID: placed.ID,
		Amount:  decimal.NewFromInt(200),
		Method:  "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPartial, after.PaymentStatus)
	assert.True(t, after.Remaining().Equal(decimal.NewFromInt(300)))

	after, err = f.registerPayment.RegisterPayment(context.Background(), orders.RegisterPaymentInput{
		OrderID: placed.ID,
		Amount:  decimal.NewFromInt(300),
		Method:  "QR",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, after.PaymentStatus)
	assert.True(t, after.Remaining().IsZero())

	// Sub-libro completo
	_, payments, err := f.queries.GetOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
}

func TestRegisterPayment_ExcedeSaldo(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID:     "cli-1",
		ProductID:      "prod-tarjetas",
		Quantity:       10,
		InitialPayment: decimal.NewFromInt(400),
	})
	require.NoError(t, err)

	_, err = f.registerPayment.RegisterPayment(context.Background(), orders.RegisterPaymentInput{
		OrderID: placed.ID,
		Amount:  decimal.NewFromInt(101), // saldo es 100
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored := f.store.orders[placed.ID]
	assert.True(t, stored.Paid.Equal(decimal.NewFromInt(400)), "el acumulado no debe cambiar")
	assert.Len(t, f.store.payments, 1)
}

func TestRegisterPayment_MontoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.registerPayment.RegisterPayment(context.Background(), orders.RegisterPaymentInput{
		OrderID: "o-1",
		Amount:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPayment_PedidoCancelado(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err)
	_, err = f.cancel.CancelOrder(context.Background(), placed.ID, "user-1")
	require.NoError(t, err)

	_, err = f.registerPayment.RegisterPayment(context.Background(), orders.RegisterPaymentInput{
		OrderID: placed.ID,
		Amount:  decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_CicloCompleto(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   10,
	})
	require.NoError(t, err)

	inProgress, err := f.transition.Transition(context.Background(), placed.ID, entity.OrderInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInProgress, inProgress.State)
	assert.Nil(t, inProgress.DeliveredAt)

	delivered, err := f.transition.Transition(context.Background(), placed.ID, entity.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, delivered.State)
	require.NotNil(t, delivered.DeliveredAt)

	// Snapshot de consumo poblado una sola vez al entregar
	assert.True(t, delivered.ConsumptionRecorded)
	require.Len(t, delivered.ConsumedMaterials, 1)
	consumed := delivered.ConsumedMaterials[0]
	assert.Equal(t, "mat-tinta", consumed.MaterialID)
	assert.Equal(t, "Tinta Negra", consumed.Name)
	assert.True(t, consumed.Quantity.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "litro", consumed.UnitMeasure)

	// La entrega no descuenta stock de nuevo: el único descuento fue al crear
	assert.True(t, f.stock("mat-tinta").Equal(decimal.NewFromInt(70)))
	assert.Len(t, f.store.movements, 1)
}

func TestTransition_SaltoDirectoRechazado(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   1,
	})
	require.NoError(t, err)

	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "PENDIENTE no pasa directo a ENTREGADO")
}

func TestTransition_DestinoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.transition.Transition(context.Background(), "o-1", entity.OrderCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la cancelación tiene su propio caso de uso")
}

func TestTransition_EntregadoEsTerminal(t *testing.T) {
	f := newFixture()
	placed, err := f.place.PlaceOrder(context.Background(), orders.PlaceOrderInput{
		CustomerID: "cli-1",
		ProductID:  "prod-tarjetas",
		Quantity:   1,
	})
	require.NoError(t, err)

	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderInProgress)
	require.NoError(t, err)
	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderDelivered)
	require.NoError(t, err)

	_, err = f.transition.Transition(context.Background(), placed.ID, entity.OrderInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// BOM
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRequirements_OrdenYPrecision(t *testing.T) {
	store := newOrderStore()
	store.products["p-1"] = &entity.Product{
		ID:        "p-1",
		UnitPrice: decimal.NewFromInt(10),
		Materials: []entity.BOMEntry{
			{MaterialID: "mat-z", QuantityPerUnit: decimal.RequireFromString("0.125")},
			{MaterialID: "mat-a", QuantityPerUnit: decimal.NewFromInt(2)},
		},
	}

	product, reqs, err := orders.ResolveRequirements(&stubProductRepo{store: store}, "p-1", 7)
	require.NoError(t, err)
	require.NotNil(t, product)
	require.Len(t, reqs, 2)

	// Ordenados por MaterialID (orden de bloqueo de filas)
	assert.Equal(t, "mat-a", reqs[0].MaterialID)
	assert.Equal(t, "mat-z", reqs[1].MaterialID)

	// Cantidades físicas sin redondear
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(14)))
	assert.True(t, reqs[1].Quantity.Equal(decimal.RequireFromString("0.875")))
}

func TestResolveRequirements_ProductoInexistente(t *testing.T) {
	store := newOrderStore()
	_, _, err := orders.ResolveRequirements(&stubProductRepo{store: store}, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
