package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/dto"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/orders"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	placeOrder      *orders.PlaceOrderUseCase
	cancelOrder     *orders.CancelOrderUseCase
	registerPayment *orders.RegisterPaymentUseCase
	transition      *orders.TransitionUseCase
	queries         *orders.QueryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	placeOrder *orders.PlaceOrderUseCase,
	cancelOrder *orders.CancelOrderUseCase,
	registerPayment *orders.RegisterPaymentUseCase,
	transition *orders.TransitionUseCase,
	queries *orders.QueryUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:      placeOrder,
		cancelOrder:     cancelOrder,
		registerPayment: registerPayment,
		transition:      transition,
		queries:         queries,
	}
}

// orderError traduce errores de dominio de pedidos a respuestas HTTP.
// El mensaje de stock insuficiente y de transición inválida llega completo al
// operador (material, requerido, disponible / estado actual e intentado).
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Place godoc
// @Summary      Crear pedido (descuenta stock por BOM)
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "customer_id, product_id, quantity, initial_payment opcional"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.placeOrder.PlaceOrder(c.Context(), orders.PlaceOrderInput{
		CustomerID:     in.CustomerID,
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		InitialPayment: in.InitialPayment,
		PaymentMethod:  in.PaymentMethod,
		PaymentNote:    in.PaymentNote,
		PromisedDate:   in.PromisedDate,
		CreatedBy:      GetUserID(c),
	})
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(order, nil))
}

// Cancel godoc
// @Summary      Cancelar pedido (restaura stock)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.cancelOrder.CancelOrder(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, nil))
}

// RegisterPayment godoc
// @Summary      Registrar abono contra un pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount, method, note"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/pagos [post]
func (h *OrderHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.registerPayment.RegisterPayment(c.Context(), orders.RegisterPaymentInput{
		OrderID: c.Params("id"),
		Amount:  in.Amount,
		Method:  in.Method,
		Note:    in.Note,
	})
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, nil))
}

// Transition godoc
// @Summary      Transicionar estado del pedido (EN_PROCESO, ENTREGADO)
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.TransitionRequest  true  "state destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/estado [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.transition.Transition(c.Context(), c.Params("id"), in.State)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, nil))
}

// GetByID devuelve un pedido con su sub-libro de pagos.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, payments, err := h.queries.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order, payments))
}

// List lista pedidos paginados.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.queries.ListOrders(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return orderError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ToOrderResponse(o, nil))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}
