package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aurora-folheados/aurora-api/internal/application/auth"
	"github.com/aurora-folheados/aurora-api/internal/application/catalog"
	"github.com/aurora-folheados/aurora-api/internal/application/commission"
	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	"github.com/aurora-folheados/aurora-api/internal/application/sales"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *catalog.ProductUseCase
	MovementUC   *inventory.MovementUseCase
	ProjectionUC *inventory.ProjectionUseCase
	SaleUC       *sales.SaleUseCase
	PaymentUC    *sales.PaymentUseCase
	ReceiptUC    *sales.ReceiptUseCase
	CustomerUC   *sales.CustomerUseCase
	CommissionUC *commission.ReportUseCase
	Webhook      *WebhookHandler
	Config       *ConfigHandler
	Hub          *SaleHub
	JWTSecret    string
}

// Router registra as rotas da API. Papéis: admin opera o depósito e o
// financeiro; promotora confere a maleta e atende seus PDVs; PDV vende.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks de pagamento (público: o gateway não manda token)
	api.Post("/webhooks/:gateway", deps.Webhook.Handle)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: leitura para todos, escrita só admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole("admin"), productHandler.Create)
	products.Put("/:id", RequireRole("admin"), productHandler.Update)
	products.Patch("/:id/prices", RequireRole("admin"), productHandler.UpdatePrices)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Razão de estoque
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.ProjectionUC)
	invGroup.Post("/movements", RequireRole("admin", "promoter"), inventoryHandler.RegisterMovement)
	invGroup.Post("/movements/batch", RequireRole("admin", "promoter"), inventoryHandler.RegisterBatch)
	invGroup.Post("/movements/confirm", RequireRole("admin", "promoter", "pdv"), inventoryHandler.ConfirmMovements)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	// O literal /pending vem antes do parâmetro :id.
	invGroup.Get("/movements/pending", inventoryHandler.PendingMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/central", RequireRole("admin"), inventoryHandler.CentralLevels)
	invGroup.Get("/locations/:tipo/:id/items", inventoryHandler.LocationItems)

	// Vendas (checkout do PDV)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.PaymentUC, deps.ReceiptUC)
	salesGroup.Post("/", RequireRole("admin", "pdv"), saleHandler.Create)
	salesGroup.Get("/", saleHandler.ListByPDV)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/cancel", RequireRole("admin", "pdv"), saleHandler.Cancel)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", RequireRole("admin", "pdv"), customerHandler.Update)

	// Usuários da rede
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/me", userHandler.Me)
	users.Get("/:id/pdvs", RequireRole("admin", "promoter"), userHandler.AssignedPDVs)

	// Snapshot da configuração operacional (admin)
	protected.Get("/config/export", RequireRole("admin"), deps.Config.Export)

	// Comissões (financeiro, só admin)
	commissions := protected.Group("/commissions", RequireRole("admin"))
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	commissions.Get("/report", commissionHandler.Report)
	commissions.Get("/metrics", commissionHandler.Metrics)
	commissions.Post("/authorize", commissionHandler.Authorize)

	// Canal realtime de estado da venda. Sem Bearer: o cliente do PDV abre o
	// canal direto do navegador e o UUID da venda é a credencial de acesso.
	app.Get("/ws/sales/:id", UpgradeRequired, deps.Hub.Handler())
}
