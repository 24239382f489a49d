package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/auth"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/orders"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/usecase"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC      *usecase.MaterialUseCase
	ProductUC       *usecase.ProductUseCase
	CustomerUC      *usecase.CustomerUseCase
	RecordMovement  *inventory.RecordMovementUseCase
	Kardex          *inventory.KardexUseCase
	PlaceOrder      *orders.PlaceOrderUseCase
	CancelOrder     *orders.CancelOrderUseCase
	RegisterPayment *orders.RegisterPaymentUseCase
	Transition      *orders.TransitionUseCase
	OrderQueries    *orders.QueryUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// La edición del catálogo y los ajustes manuales de inventario son de
	// administración; las lecturas y el flujo de pedidos los usan ambos roles.
	adminOnly := RequireRole(entity.RoleAdmin)

	// Materiales (protegido; escritura solo admin)
	materials := protected.Group("/materiales")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", adminOnly, materialHandler.Update)

	// Productos (protegido; escritura solo admin)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Clientes (protegido)
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Inventario: movimientos manuales (solo admin) y kardex (protegido)
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.Kardex)
	invGroup.Post("/movimientos", adminOnly, inventoryHandler.RegisterMovement)
	invGroup.Get("/kardex/:materialId", inventoryHandler.GetKardex)

	// Pedidos (protegido)
	ordersGroup := protected.Group("/pedidos")
	orderHandler := NewOrderHandler(
		deps.PlaceOrder,
		deps.CancelOrder,
		deps.RegisterPayment,
		deps.Transition,
		deps.OrderQueries,
	)
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/cancelar", orderHandler.Cancel)
	ordersGroup.Post("/:id/pagos", orderHandler.RegisterPayment)
	ordersGroup.Post("/:id/estado", orderHandler.Transition)
}
