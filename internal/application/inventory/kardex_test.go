package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

func TestGetKardex_Conciliado(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Tinta Negra", "litro", "0")
	uc := inventory.NewRecordMovementUseCase(&fakeTxRunner{store: store})
	kardex := inventory.NewKardexUseCase(&fakeMaterialRepo{store: store}, &fakeMovementRepo{store: store})
	ctx := context.Background()

	// Historia: +100, -30, +30 (todo vía el coordinador transaccional)
	for _, step := range []struct {
		typ string
		qty int64
	}{
		{entity.MovementIngreso, 100},
		{entity.MovementSalida, 30},
		{entity.MovementIngreso, 30},
	} {
		_, err := uc.RecordMovement(ctx, inventory.MovementInput{
			MaterialID: "mat-1",
			Type:       step.typ,
			Quantity:   decimal.NewFromInt(step.qty),
		})
		require.NoError(t, err)
	}

	result, err := kardex.GetKardex(ctx, "mat-1")
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	assert.True(t, result.Lines[0].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Lines[1].Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Lines[2].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Reconciled,
		"con toda mutación pasando por el libro, el saldo final coincide con el stock")
}

// Un material cuyo stock fue tocado fuera del libro queda marcado como no
// conciliado: la señal de que hay datos corruptos que investigar.
func TestGetKardex_Desconciliado(t *testing.T) {
	store := newFakeStore()
	store.addMaterial("mat-1", "Papel Bond", "unidad", "50") // stock sin respaldo en el libro
	kardex := inventory.NewKardexUseCase(&fakeMaterialRepo{store: store}, &fakeMovementRepo{store: store})

	result, err := kardex.GetKardex(context.Background(), "mat-1")
	require.NoError(t, err)
	assert.Empty(t, result.Lines)
	assert.False(t, result.Reconciled)
}

func TestGetKardex_MaterialInexistente(t *testing.T) {
	store := newFakeStore()
	kardex := inventory.NewKardexUseCase(&fakeMaterialRepo{store: store}, &fakeMovementRepo{store: store})

	_, err := kardex.GetKardex(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
