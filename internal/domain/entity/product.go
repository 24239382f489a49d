package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMEntry es una línea de la lista de materiales de un producto:
// cuánto material se requiere para producir una unidad.
type BOMEntry struct {
	MaterialID      string
	QuantityPerUnit decimal.Decimal // > 0
}

// Product representa un producto de la imprenta (tarjetas, talonarios, afiches).
// Materials es su lista de materiales (BOM); se lee en vivo al procesar pedidos.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitPrice   decimal.Decimal // precio de venta por unidad
	Materials   []BOMEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
