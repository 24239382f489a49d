package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima de la imprenta (tinta, papel, plancha).
// Quantity es el stock disponible; solo se muta por la vía de movimientos
// (coordinador transaccional), nunca desde la edición administrativa.
type Material struct {
	ID          string
	Name        string
	UnitMeasure string          // unidad, metro, litro, kg
	UnitPrice   decimal.Decimal // precio de compra de referencia
	Quantity    decimal.Decimal // stock disponible (nunca negativo post-transacción)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
