package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurora-folheados/aurora-api/internal/application/sales"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/pkg/config"
)

var _ sales.PaymentGateway = (*Asaas)(nil)

// Asaas adaptador do gateway Asaas (API /v3/payments).
type Asaas struct {
	cfg    config.AsaasConfig
	client *http.Client
	logger zerolog.Logger
}

// NewAsaas constrói o adaptador.
func NewAsaas(cfg config.AsaasConfig, logger zerolog.Logger) *Asaas {
	return &Asaas{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Name identifica o gateway na venda persistida.
func (g *Asaas) Name() string { return "asaas" }

type asaasPaymentRequest struct {
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"externalReference"`
	CreditCardToken   string  `json:"creditCardToken,omitempty"`
	InstallmentCount  int     `json:"installmentCount,omitempty"`
}

type asaasPaymentResponse struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"externalReference"`
}

type asaasPixQRCode struct {
	EncodedImage string `json:"encodedImage"`
	Payload      string `json:"payload"`
}

// CreatePayment cria a cobrança; para PIX faz a chamada extra que devolve o
// QR code e o copia-e-cola.
func (g *Asaas) CreatePayment(ctx context.Context, req sales.PaymentRequest) (*sales.PaymentResult, error) {
	value, _ := req.Amount.Float64()
	body := asaasPaymentRequest{
		Value:             value,
		DueDate:           time.Now().Format("2006-01-02"),
		Description:       req.Description,
		ExternalReference: req.SaleID,
	}
	switch req.Method {
	case entity.PaymentMethodPIX:
		body.BillingType = "PIX"
	case entity.PaymentMethodCard:
		body.BillingType = "CREDIT_CARD"
		body.CreditCardToken = req.CardToken
	case entity.PaymentMethodInstallment:
		body.BillingType = "CREDIT_CARD"
		body.CreditCardToken = req.CardToken
		body.InstallmentCount = 3
	default:
		return nil, domain.ErrInvalidInput
	}

	var resp asaasPaymentResponse
	if err := g.doJSON(ctx, http.MethodPost, "/v3/payments", body, &resp); err != nil {
		return nil, err
	}

	result := &sales.PaymentResult{
		GatewayID: resp.ID,
		Approved:  resp.Status == "CONFIRMED" || resp.Status == "RECEIVED",
	}

	if req.Method == entity.PaymentMethodPIX {
		var qr asaasPixQRCode
		if err := g.doJSON(ctx, http.MethodGet, "/v3/payments/"+resp.ID+"/pixQrCode", nil, &qr); err != nil {
			return nil, err
		}
		result.PixPayload = qr.Payload
		result.PixQRCode = qr.EncodedImage
	}
	return result, nil
}

type asaasWebhookBody struct {
	Event   string `json:"event"`
	Payment struct {
		ID                string `json:"id"`
		Status            string `json:"status"`
		ExternalReference string `json:"externalReference"`
	} `json:"payment"`
}

// ParseWebhook trata a notificação do Asaas. Diferente do Mercado Pago, o
// corpo já traz a referência externa e o evento; não há consulta de volta.
func (g *Asaas) ParseWebhook(ctx context.Context, body []byte) (*sales.WebhookEvent, error) {
	var hook asaasWebhookBody
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("parse webhook asaas: %w", err)
	}
	if hook.Payment.ExternalReference == "" {
		return nil, nil
	}

	switch hook.Event {
	case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED":
		return &sales.WebhookEvent{SaleID: hook.Payment.ExternalReference, Approved: true}, nil
	case "PAYMENT_REPROVED_BY_RISK_ANALYSIS", "PAYMENT_REFUNDED", "PAYMENT_DELETED":
		return &sales.WebhookEvent{SaleID: hook.Payment.ExternalReference, Approved: false}, nil
	}
	return nil, nil
}

func (g *Asaas) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal asaas request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build asaas request: %w", err)
	}
	httpReq.Header.Set("access_token", g.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("asaas %s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read asaas response: %w", err)
	}
	if httpResp.StatusCode >= 400 {
		g.logger.Warn().Int("status", httpResp.StatusCode).
			Str("path", path).Msg("asaas rejeitou a requisição")
		return fmt.Errorf("%w: asaas HTTP %d: %s",
			domain.ErrPaymentDeclined, httpResp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode asaas response: %w", err)
	}
	return nil
}
