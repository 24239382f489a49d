package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/dto"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y kardex (protegido).
type InventoryHandler struct {
	recordMovement *inventory.RecordMovementUseCase
	kardex         *inventory.KardexUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(recordMovement *inventory.RecordMovementUseCase, kardex *inventory.KardexUseCase) *InventoryHandler {
	return &InventoryHandler{recordMovement: recordMovement, kardex: kardex}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de material (INGRESO o SALIDA)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "material_id, type, quantity, unit_cost (ingresos), reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.recordMovement.RecordMovement(c.Context(), inventory.MovementInput{
		MaterialID: in.MaterialID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		Reason:     in.Reason,
		Reference:  in.Reference,
		CreatedBy:  GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// GetKardex godoc
// @Summary      Kardex de un material (movimientos con saldo corrido)
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        materialId  path  string  true  "ID del material"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/kardex/{materialId} [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	result, err := h.kardex.GetKardex(c.Context(), c.Params("materialId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.ToKardexResponse(result.Material, result.Lines, result.Reconciled))
}
