package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

// KardexLine es un movimiento con su saldo acumulado.
type KardexLine struct {
	Movement *entity.Movement
	Balance  decimal.Decimal
}

// BuildKardex pliega los movimientos en orden cronológico y calcula el saldo
// acumulado desde cero (servicio de dominio, puro).
// Con el libro completo, el saldo de la última línea debe coincidir con el
// stock disponible del material (invariante de conciliación).
func BuildKardex(movements []*entity.Movement) []KardexLine {
	lines := make([]KardexLine, 0, len(movements))
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.SignedQuantity())
		lines = append(lines, KardexLine{Movement: m, Balance: balance})
	}
	return lines
}

// FinalBalance devuelve el saldo tras plegar todos los movimientos.
func FinalBalance(movements []*entity.Movement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.SignedQuantity())
	}
	return balance
}
