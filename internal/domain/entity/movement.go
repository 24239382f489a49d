package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro kardex.
const (
	MovementIngreso = "INGRESO" // entrada de material
	MovementSalida  = "SALIDA"  // salida de material
)

// Movement es una entrada inmutable del libro de movimientos.
// Quantity siempre es positiva; el signo lo da Type. OrderID referencia el
// pedido que originó el movimiento (consumo o devolución), si aplica.
type Movement struct {
	ID          string
	MaterialID  string
	Type        string
	Quantity    decimal.Decimal  // > 0 siempre
	UnitMeasure string           // snapshot de la unidad del material
	UnitCost    *decimal.Decimal // solo con sentido en INGRESO
	Reason      string           // motivo (compra, consumo pedido, devolución...)
	OrderID     *string          // referencia estructurada al pedido, si aplica
	Reference   string           // texto libre adicional (n° factura proveedor, etc.)
	CreatedBy   string
	CreatedAt   time.Time
}

// SignedQuantity devuelve la cantidad con signo según el tipo
// (INGRESO suma, SALIDA resta).
func (m *Movement) SignedQuantity() decimal.Decimal {
	if m.Type == MovementSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
