package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	OrderPending    = "PENDIENTE"
	OrderInProgress = "EN_PROCESO"
	OrderDelivered  = "ENTREGADO" // terminal
	OrderCancelled  = "CANCELADO" // terminal
)

// Estados de pago derivados de (total, pagado).
const (
	PaymentNone    = "SIN_PAGO"
	PaymentPartial = "PARCIAL"
	PaymentPaid    = "PAGADO"
)

// Payment es una entrada del sub-libro de pagos de un pedido.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal // > 0
	Method    string          // efectivo, transferencia, QR
	Note      string
	CreatedAt time.Time
}

// ConsumedMaterial es el snapshot de material consumido por un pedido,
// poblado una sola vez al entregar.
type ConsumedMaterial struct {
	MaterialID  string          `json:"material_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
}

// Order representa un pedido de la imprenta: producto, cantidad, totales,
// sub-libro de pagos y ciclo de vida. Paid nunca supera Total.
type Order struct {
	ID                  string
	CustomerID          string
	ProductID           string
	Quantity            int             // >= 1
	UnitPrice           decimal.Decimal // snapshot del precio al crear
	Total               decimal.Decimal // UnitPrice * Quantity
	Paid                decimal.Decimal // acumulado de pagos
	PaymentStatus       string          // derivado: SIN_PAGO, PARCIAL, PAGADO
	State               string          // PENDIENTE, EN_PROCESO, ENTREGADO, CANCELADO
	PromisedDate        *time.Time
	DeliveredAt         *time.Time
	ConsumptionRecorded bool // idempotencia del snapshot de entrega
	ConsumedMaterials   []ConsumedMaterial
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Remaining devuelve el saldo pendiente: max(Total - Paid, 0).
func (o *Order) Remaining() decimal.Decimal {
	r := o.Total.Sub(o.Paid)
	if r.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return r
}

// PaymentStatusFor deriva el estado de pago como función pura de (total, pagado).
func PaymentStatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentNone
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// IsTerminal indica si el estado no admite más transiciones.
func (o *Order) IsTerminal() bool {
	return o.State == OrderDelivered || o.State == OrderCancelled
}

// CanTransition valida la máquina de estados del pedido:
// PENDIENTE -> EN_PROCESO -> ENTREGADO, y cancelación desde PENDIENTE o
// EN_PROCESO. ENTREGADO y CANCELADO son terminales.
func CanTransition(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderInProgress || to == OrderCancelled
	case OrderInProgress:
		return to == OrderDelivered || to == OrderCancelled
	default:
		return false
	}
}
