package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/application/sales"
)

// WebhookHandler recebe as notificações do gateway de pagamento. Rota
// pública: o gateway não manda Bearer token; a verificação é o re-fetch do
// pagamento (Mercado Pago) ou a referência externa (Asaas) no adapter.
type WebhookHandler struct {
	paymentUC *sales.PaymentUseCase
	gateway   string
	logger    zerolog.Logger
}

// NewWebhookHandler constrói o handler para o gateway configurado na subida.
func NewWebhookHandler(paymentUC *sales.PaymentUseCase, gateway string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{paymentUC: paymentUC, gateway: gateway, logger: logger}
}

// Handle godoc
// @Summary      Webhook do gateway de pagamento
// @Tags         webhooks
// @Accept       json
// @Param        gateway  path  string  true  "mercadopago ou asaas"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/webhooks/{gateway} [post]
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	if c.Params("gateway") != h.gateway {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_GATEWAY", Message: "gateway não configurado"})
	}
	if err := h.paymentUC.HandleWebhook(c.Context(), c.Body()); err != nil {
		// Status não-2xx faz o gateway reentregar; o processamento é
		// idempotente, então a retentativa é segura.
		h.logger.Error().Err(err).Str("gateway", h.gateway).Msg("falha ao processar webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "falha ao processar notificação"})
	}
	return c.SendStatus(fiber.StatusOK)
}
