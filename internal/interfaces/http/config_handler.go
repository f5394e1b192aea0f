package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	commissionrules "github.com/aurora-folheados/aurora-api/internal/domain/commission"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	pricing "github.com/aurora-folheados/aurora-api/internal/domain/sales"
)

// ConfigHandler exporta o snapshot da configuração operacional vigente:
// chave/valor livre, sem versionamento. Serve para o frontend exibir as
// regras em vigor e para o suporte anexar em chamados.
type ConfigHandler struct {
	appName string
	gateway string
}

// NewConfigHandler constrói o handler.
func NewConfigHandler(appName, gateway string) *ConfigHandler {
	return &ConfigHandler{appName: appName, gateway: gateway}
}

// Export godoc
// @Summary      Snapshot JSON da configuração operacional
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/config/export [get]
func (h *ConfigHandler) Export(c *fiber.Ctx) error {
	one := decimal.NewFromInt(1)
	return c.JSON(fiber.Map{
		"app":          h.appName,
		"exported_at":  time.Now().Format(time.RFC3339),
		"gateway":      h.gateway,
		"payment_methods": []string{
			entity.PaymentMethodPIX,
			entity.PaymentMethodCard,
			entity.PaymentMethodCash,
			entity.PaymentMethodInstallment,
		},
		"cash_discount_rate": pricing.DiscountRate,
		"low_stock_thresholds": fiber.Map{
			"pdv":      entity.LowStockPDV,
			"promoter": entity.LowStockPromoter,
		},
		"commission": fiber.Map{
			"kit_size":         commissionrules.KitSize,
			"override_rate":    commissionrules.OverrideRate,
			"junior_rate":      commissionrules.RateFor(entity.TierJunior, decimal.Zero),
			"senior_rate":      commissionrules.RateFor(entity.TierSenior, decimal.Zero),
			"senior_high_rate": commissionrules.RateFor(entity.TierSenior, one),
			"coordinator_rate": commissionrules.RateFor(entity.TierCoordinator, decimal.Zero),
		},
	})
}
