package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/auth"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/orders"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/application/usecase"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Cambadios/ImprentaCamiri-sub000/internal/interfaces/http"
	"github.com/Cambadios/ImprentaCamiri-sub000/pkg/config"
	"github.com/Cambadios/ImprentaCamiri-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	materialUC := usecase.NewMaterialUseCase(materialRepo)
	productUC := usecase.NewProductUseCase(productRepo, materialRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner)
	kardexUC := inventory.NewKardexUseCase(materialRepo, movementRepo)

	placeOrderUC := orders.NewPlaceOrderUseCase(txRunner, customerRepo)
	cancelOrderUC := orders.NewCancelOrderUseCase(txRunner)
	registerPaymentUC := orders.NewRegisterPaymentUseCase(txRunner)
	transitionUC := orders.NewTransitionUseCase(txRunner)
	orderQueriesUC := orders.NewQueryUseCase(orderRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Imprenta Camiri API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:      materialUC,
		ProductUC:       productUC,
		CustomerUC:      customerUC,
		RecordMovement:  recordMovementUC,
		Kardex:          kardexUC,
		PlaceOrder:      placeOrderUC,
		CancelOrder:     cancelOrderUC,
		RegisterPayment: registerPaymentUC,
		Transition:      transitionUC,
		OrderQueries:    orderQueriesUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
