package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (snapshot + rollback)
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	materials map[string]*entity.Material
	movements []*entity.Movement
}

func newFakeStore() *fakeStore {
	return &fakeStore{materials: make(map[string]*entity.Material)}
}

func (s *fakeStore) addMaterial(id, name, unit string, qty string) {
	s.materials[id] = &entity.Material{
		ID:          id,
		Name:        name,
		UnitMeasure: unit,
		Quantity:    decimal.RequireFromString(qty),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, m := range s.materials {
		clone := *m
		cp.materials[id] = &clone
	}
	cp.movements = append([]*entity.Movement(nil), s.movements...)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.materials = snap.materials
	s.movements = snap.movements
}

type fakeMaterialRepo struct{ store *fakeStore }

func (r *fakeMaterialRepo) Create(m *entity.Material) error { r.store.materials[m.ID] = m; return nil }
func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.store.materials[id], nil
}
func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.store.materials[id], nil
}
func (r *fakeMaterialRepo) List(limit, offset int) ([]*entity.Material, error) { return nil, nil }
func (r *fakeMaterialRepo) Update(m *entity.Material) error                    { return nil }
func (r *fakeMaterialRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	m, ok := r.store.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Quantity = qty
	return nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(mov *entity.Movement) error {
	r.store.movements = append(r.store.movements, mov)
	return nil
}
func (r *fakeMovementRepo) ListByMaterial(materialID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) ListByOrder(orderID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner emula Commit/Rollback: toma un snapshot antes de ejecutar y lo
// restaura si fn devuelve error.
type fakeTxRunner struct{ store *fakeStore }

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
) error) error {
	snap := tr.store.snapshot()
	if err := fn(&fakeMaterialRepo{store: tr.store}, &fakeMovementRepo{store: tr.store}); err != nil {
		tr.store.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Ingreso(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Tinta Negra", "litro", "10")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})

	cost := decimal.RequireFromString("45.50")
	mov, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		MaterialID: "mat-1",
		Type:       entity.MovementIngreso,
		Quantity:   decimal.NewFromInt(5),
		UnitCost:   &cost,
		Reason:     "compra proveedor",
		CreatedBy:  "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, entity.MovementIngreso, mov.Type)
	assert.Equal(t, "litro", mov.UnitMeasure, "la unidad se toma del material")
	assert.True(t, store.materials["mat-1"].Quantity.Equal(decimal.NewFromInt(15)))
	require.Len(t, store.movements, 1)
}

func TestRecordMovement_Salida(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Papel Bond", "unidad", "100")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		MaterialID: "mat-1",
		Type:       entity.MovementSalida,
		Quantity:   decimal.NewFromInt(30),
		Reason:     "merma",
		CreatedBy:  "user-1",
	})
	require.NoError(t, err)
	assert.True(t, store.materials["mat-1"].Quantity.Equal(decimal.NewFromInt(70)))
}

// Una SALIDA que dejaría el stock negativo se rechaza completa: ni el contador
// ni el libro cambian.
func TestRecordMovement_SalidaInsuficiente_NoTocaNada(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Tinta Negra", "litro", "10")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		MaterialID: "mat-1",
		Type:       entity.MovementSalida,
		Quantity:   decimal.NewFromInt(11),
		CreatedBy:  "user-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Tinta Negra", insufficient.MaterialName)
	assert.True(t, insufficient.Required.Equal(decimal.NewFromInt(11)))
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(10)))

	assert.True(t, store.materials["mat-1"].Quantity.Equal(decimal.NewFromInt(10)),
		"el stock no debe cambiar")
	assert.Empty(t, store.movements, "el libro no debe registrar nada")
}

// Sacar exactamente el stock disponible es válido: el stock queda en cero.
func TestRecordMovement_SalidaExacta_DejaCero(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Plancha", "unidad", "4")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		MaterialID: "mat-1",
		Type:       entity.MovementSalida,
		Quantity:   decimal.NewFromInt(4),
		CreatedBy:  "user-1",
	})
	require.NoError(t, err)
	assert.True(t, store.materials["mat-1"].Quantity.IsZero())
}

func TestRecordMovement_Validaciones(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Tinta", "litro", "10")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})
	ctx := context.Background()

	negCost := decimal.NewFromInt(-1)
	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"sin material", inventory.MovementInput{Type: entity.MovementIngreso, Quantity: decimal.NewFromInt(1)}},
		{"tipo desconocido", inventory.MovementInput{MaterialID: "mat-1", Type: "AJUSTE", Quantity: decimal.NewFromInt(1)}},
		{"cantidad cero", inventory.MovementInput{MaterialID: "mat-1", Type: entity.MovementIngreso, Quantity: decimal.Zero}},
		{"cantidad negativa", inventory.MovementInput{MaterialID: "mat-1", Type: entity.MovementSalida, Quantity: decimal.NewFromInt(-5)}},
		{"costo negativo", inventory.MovementInput{MaterialID: "mat-1", Type: entity.MovementIngreso, Quantity: decimal.NewFromInt(1), UnitCost: &negCost}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.movements)
}

func TestRecordMovement_MaterialInexistente(t *testing.T) {
	store := newFakeStore()
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		MaterialID: "no-existe",
		Type:       entity.MovementIngreso,
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
