package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

// PlaceOrderRequest body para POST /api/pedidos.
type PlaceOrderRequest struct {
	CustomerID     string          `json:"customer_id"`
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	InitialPayment decimal.Decimal `json:"initial_payment"` // opcional, >= 0
	PaymentMethod  string          `json:"payment_method,omitempty"`
	PaymentNote    string          `json:"payment_note,omitempty"`
	PromisedDate   *time.Time      `json:"promised_date,omitempty"`
}

// RegisterPaymentRequest body para POST /api/pedidos/:id/pagos.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Note   string          `json:"note,omitempty"`
}

// TransitionRequest body para POST /api/pedidos/:id/estado.
type TransitionRequest struct {
	State string `json:"state"` // EN_PROCESO | ENTREGADO
}

// PaymentResponse una entrada del sub-libro de pagos.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ConsumedMaterialResponse snapshot de consumo al entregar.
type ConsumedMaterialResponse struct {
	MaterialID  string          `json:"material_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID                string                     `json:"id"`
	CustomerID        string                     `json:"customer_id"`
	ProductID         string                     `json:"product_id"`
	Quantity          int                        `json:"quantity"`
	UnitPrice         decimal.Decimal            `json:"unit_price"`
	Total             decimal.Decimal            `json:"total"`
	Paid              decimal.Decimal            `json:"paid"`
	Remaining         decimal.Decimal            `json:"remaining"`
	PaymentStatus     string                     `json:"payment_status"`
	State             string                     `json:"state"`
	PromisedDate      *time.Time                 `json:"promised_date,omitempty"`
	DeliveredAt       *time.Time                 `json:"delivered_at,omitempty"`
	ConsumedMaterials []ConsumedMaterialResponse `json:"consumed_materials,omitempty"`
	Payments          []PaymentResponse          `json:"payments,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
}

// ToOrderResponse mapea la entidad al DTO; payments puede ser nil.
func ToOrderResponse(o *entity.Order, payments []*entity.Payment) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		UnitPrice:     o.UnitPrice,
		Total:         o.Total,
		Paid:          o.Paid,
		Remaining:     o.Remaining(),
		PaymentStatus: o.PaymentStatus,
		State:         o.State,
		PromisedDate:  o.PromisedDate,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
	}
	for _, cm := range o.ConsumedMaterials {
		resp.ConsumedMaterials = append(resp.ConsumedMaterials, ConsumedMaterialResponse{
			MaterialID:  cm.MaterialID,
			Name:        cm.Name,
			Quantity:    cm.Quantity,
			UnitMeasure: cm.UnitMeasure,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Note:      p.Note,
			CreatedAt: p.CreatedAt,
		})
	}
	return resp
}
