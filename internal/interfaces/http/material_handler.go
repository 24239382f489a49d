package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/dto"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/usecase"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
)

// MaterialHandler maneja las peticiones HTTP de materiales (protegido).
// El stock no se edita aquí: cambia solo vía movimientos de inventario.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

func materialError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "material duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create da de alta un material (stock inicial cero).
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Create(c.Context(), usecase.CreateMaterialInput{
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		UnitPrice:   in.UnitPrice,
	})
	if err != nil {
		return materialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMaterialResponse(material))
}

// GetByID obtiene un material.
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(dto.ToMaterialResponse(material))
}

// List lista materiales paginados.
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return materialError(c, err)
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMaterialResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "materials": out})
}

// Update edita nombre, unidad y precio del material.
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Update(c.Context(), c.Params("id"), usecase.CreateMaterialInput{
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		UnitPrice:   in.UnitPrice,
	})
	if err != nil {
		return materialError(c, err)
	}
	return c.JSON(dto.ToMaterialResponse(material))
}
