package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

// SaveMaterialRequest body para alta/edición de materiales.
type SaveMaterialRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// MaterialResponse material con su stock disponible.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToMaterialResponse mapea la entidad al DTO.
func ToMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		UnitMeasure: m.UnitMeasure,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}

// BOMEntryDTO línea de la lista de materiales de un producto.
type BOMEntryDTO struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// SaveProductRequest body para alta/edición de productos.
type SaveProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Materials   []BOMEntryDTO   `json:"materials"`
}

// ProductResponse producto con su BOM.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Materials   []BOMEntryDTO   `json:"materials"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Materials:   make([]BOMEntryDTO, 0, len(p.Materials)),
		CreatedAt:   p.CreatedAt,
	}
	for _, e := range p.Materials {
		resp.Materials = append(resp.Materials, BOMEntryDTO{
			MaterialID:      e.MaterialID,
			QuantityPerUnit: e.QuantityPerUnit,
		})
	}
	return resp
}

// SaveCustomerRequest body para alta de clientes.
type SaveCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCustomerResponse mapea la entidad al DTO.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT emitido.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
