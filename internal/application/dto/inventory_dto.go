package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	domaininv "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/inventory"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
type RegisterMovementRequest struct {
	MaterialID string           `json:"material_id"`
	Type       string           `json:"type"` // INGRESO | SALIDA
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"` // solo INGRESO
	Reason     string           `json:"reason"`
	Reference  string           `json:"reference,omitempty"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID          string           `json:"id"`
	MaterialID  string           `json:"material_id"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitMeasure string           `json:"unit_measure"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	OrderID     *string          `json:"order_id,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		MaterialID:  m.MaterialID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitMeasure: m.UnitMeasure,
		UnitCost:    m.UnitCost,
		Reason:      m.Reason,
		OrderID:     m.OrderID,
		Reference:   m.Reference,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// KardexLineResponse movimiento con saldo acumulado.
type KardexLineResponse struct {
	Movement MovementResponse `json:"movement"`
	Balance  decimal.Decimal  `json:"balance"`
}

// KardexResponse kardex completo de un material.
type KardexResponse struct {
	MaterialID   string               `json:"material_id"`
	MaterialName string               `json:"material_name"`
	UnitMeasure  string               `json:"unit_measure"`
	CurrentStock decimal.Decimal      `json:"current_stock"`
	Reconciled   bool                 `json:"reconciled"` // saldo final == stock disponible
	Lines        []KardexLineResponse `json:"lines"`
}

// ToKardexResponse mapea el resultado del caso de uso al DTO.
func ToKardexResponse(material *entity.Material, lines []domaininv.KardexLine, reconciled bool) KardexResponse {
	out := KardexResponse{
		MaterialID:   material.ID,
		MaterialName: material.Name,
		UnitMeasure:  material.UnitMeasure,
		CurrentStock: material.Quantity,
		Reconciled:   reconciled,
		Lines:        make([]KardexLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, KardexLineResponse{
			Movement: ToMovementResponse(l.Movement),
			Balance:  l.Balance,
		})
	}
	return out
}
