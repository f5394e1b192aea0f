package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// SalesTxRunner executa uma função dentro de uma transação de BD com os
// repositórios do fluxo de venda atados a essa tx: cabeçalho, itens, baixas
// de estoque e cadastro de cliente entram juntos ou nada.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// PaymentRequest é o pedido de cobrança enviado ao gateway após o commit da
// venda. SaleID vai como referência externa para o webhook fechar o ciclo.
type PaymentRequest struct {
	SaleID      string
	Amount      decimal.Decimal
	Method      string // PIX | CARD | INSTALLMENT
	Description string
	CardToken   string // tokenização client-side; nunca dados de cartão
	Payer       PayerInfo
}

// PayerInfo identificação mínima do pagador exigida pelos gateways.
type PayerInfo struct {
	Name string
	CPF  string
}

// PaymentResult é a resposta normalizada do gateway.
type PaymentResult struct {
	GatewayID  string
	Approved   bool   // cartão aprovado na hora (capture síncrona)
	PixPayload string // copia-e-cola, quando método PIX
	PixQRCode  string // base64 do QR, quando o gateway fornece
}

// WebhookEvent é a notificação de pagamento normalizada dos webhooks.
// SaleID vem da referência externa enviada na criação da cobrança.
type WebhookEvent struct {
	SaleID   string
	Approved bool
}

// PaymentGateway abstrai o provedor de cobrança (Mercado Pago ou Asaas).
// O adapter concreto é escolhido na subida por configuração.
type PaymentGateway interface {
	Name() string
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	// ParseWebhook valida e normaliza o corpo cru da notificação. Eventos que
	// não dizem respeito a pagamento devolvem (nil, nil).
	ParseWebhook(ctx context.Context, body []byte) (*WebhookEvent, error)
}

// SaleNotifier empurra mudanças de estado da venda para os clientes
// conectados (canal websocket do checkout).
type SaleNotifier interface {
	NotifySaleStatus(saleID, status string)
}
