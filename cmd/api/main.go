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

	"github.com/aurora-folheados/aurora-api/internal/application/auth"
	"github.com/aurora-folheados/aurora-api/internal/application/catalog"
	"github.com/aurora-folheados/aurora-api/internal/application/commission"
	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	appsales "github.com/aurora-folheados/aurora-api/internal/application/sales"
	"github.com/aurora-folheados/aurora-api/internal/infrastructure/payment"
	infrapdf "github.com/aurora-folheados/aurora-api/internal/infrastructure/pdf"
	"github.com/aurora-folheados/aurora-api/internal/infrastructure/postgres"
	httpRouter "github.com/aurora-folheados/aurora-api/internal/interfaces/http"
	"github.com/aurora-folheados/aurora-api/pkg/config"
	"github.com/aurora-folheados/aurora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	analyticsRepo := postgres.NewSalesAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Gateway escolhido pela credencial presente na subida.
	var gateway appsales.PaymentGateway
	switch cfg.Gateway() {
	case "mercadopago":
		gateway = payment.NewMercadoPago(cfg.MercadoPago, log.Zerolog())
	default:
		gateway = payment.NewAsaas(cfg.Asaas, log.Zerolog())
	}
	log.Info().Str("gateway", gateway.Name()).Msg("gateway de pagamento configurado")

	hub := httpRouter.NewSaleHub(log.Zerolog())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, productRepo)
	projectionUC := inventory.NewProjectionUseCase(balanceRepo)
	saleUC := appsales.NewSaleUseCase(txRunner, saleRepo, productRepo, movementUC, gateway, hub, log.Zerolog())
	paymentUC := appsales.NewPaymentUseCase(txRunner, saleRepo, movementUC, gateway, hub, log.Zerolog())
	receiptUC := appsales.NewReceiptUseCase(saleRepo, productRepo, customerRepo, infrapdf.NewReceiptGenerator())
	customerUC := appsales.NewCustomerUseCase(customerRepo)
	commissionUC := commission.NewReportUseCase(userRepo, analyticsRepo, commissionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Aurora Folheados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		MovementUC:   movementUC,
		ProjectionUC: projectionUC,
		SaleUC:       saleUC,
		PaymentUC:    paymentUC,
		ReceiptUC:    receiptUC,
		CustomerUC:   customerUC,
		CommissionUC: commissionUC,
		Webhook:      httpRouter.NewWebhookHandler(paymentUC, gateway.Name(), log.Zerolog()),
		Config:       httpRouter.NewConfigHandler(cfg.App.Name, gateway.Name()),
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
