// Package payment contém os adaptadores dos gateways de cobrança (Mercado
// Pago e Asaas) atrás do porto sales.PaymentGateway. Dados de cartão nunca
// passam por aqui: só o token gerado no frontend.
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

var _ sales.PaymentGateway = (*MercadoPago)(nil)

// MercadoPago adaptador do gateway Mercado Pago (API /v1/payments).
type MercadoPago struct {
	cfg    config.MercadoPagoConfig
	client *http.Client
	logger zerolog.Logger
}

// NewMercadoPago constrói o adaptador.
func NewMercadoPago(cfg config.MercadoPagoConfig, logger zerolog.Logger) *MercadoPago {
	return &MercadoPago{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Name identifica o gateway na venda persistida.
func (g *MercadoPago) Name() string { return "mercadopago" }

type mpPaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	PaymentMethodID   string  `json:"payment_method_id,omitempty"`
	Token             string  `json:"token,omitempty"`
	Installments      int     `json:"installments,omitempty"`
	ExternalReference string  `json:"external_reference"`
	Payer             mpPayer `json:"payer"`
}

type mpPayer struct {
	Email          string            `json:"email"`
	FirstName      string            `json:"first_name,omitempty"`
	Identification *mpIdentification `json:"identification,omitempty"`
}

type mpIdentification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type mpPaymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	ExternalReference  string      `json:"external_reference"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// CreatePayment cria a cobrança. X-Idempotency-Key leva o id da venda: a
// retentativa de rede não duplica a cobrança no gateway.
func (g *MercadoPago) CreatePayment(ctx context.Context, req sales.PaymentRequest) (*sales.PaymentResult, error) {
	amount, _ := req.Amount.Float64()
	body := mpPaymentRequest{
		TransactionAmount: amount,
		Description:       req.Description,
		ExternalReference: req.SaleID,
		Payer:             mpPayer{Email: "vendas@aurorafolheados.com.br", FirstName: req.Payer.Name},
	}
	if req.Payer.CPF != "" {
		body.Payer.Identification = &mpIdentification{Type: "CPF", Number: req.Payer.CPF}
	}
	switch req.Method {
	case entity.PaymentMethodPIX:
		body.PaymentMethodID = "pix"
	case entity.PaymentMethodCard:
		body.Token = req.CardToken
		body.Installments = 1
	case entity.PaymentMethodInstallment:
		body.Token = req.CardToken
		body.Installments = 3
	default:
		return nil, domain.ErrInvalidInput
	}

	var resp mpPaymentResponse
	if err := g.doJSON(ctx, http.MethodPost, "/v1/payments", req.SaleID, body, &resp); err != nil {
		return nil, err
	}

	if resp.Status == "rejected" || resp.Status == "cancelled" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, resp.StatusDetail)
	}

	return &sales.PaymentResult{
		GatewayID:  resp.ID.String(),
		Approved:   resp.Status == "approved",
		PixPayload: resp.PointOfInteraction.TransactionData.QRCode,
		PixQRCode:  resp.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

type mpWebhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// ParseWebhook trata a notificação do Mercado Pago. O corpo só traz o id do
// pagamento; o estado vem de uma consulta de volta à API (a notificação em
// si não é confiável como fonte).
func (g *MercadoPago) ParseWebhook(ctx context.Context, body []byte) (*sales.WebhookEvent, error) {
	var hook mpWebhookBody
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("parse webhook mercadopago: %w", err)
	}
	if hook.Type != "payment" || hook.Data.ID.String() == "" {
		return nil, nil
	}

	var payment mpPaymentResponse
	path := "/v1/payments/" + hook.Data.ID.String()
	if err := g.doJSON(ctx, http.MethodGet, path, "", nil, &payment); err != nil {
		return nil, err
	}
	if payment.ExternalReference == "" {
		return nil, nil
	}

	switch payment.Status {
	case "approved":
		return &sales.WebhookEvent{SaleID: payment.ExternalReference, Approved: true}, nil
	case "rejected", "cancelled", "refunded", "charged_back":
		return &sales.WebhookEvent{SaleID: payment.ExternalReference, Approved: false}, nil
	}
	// pending / in_process: aguardar a próxima notificação.
	return nil, nil
}

func (g *MercadoPago) doJSON(ctx context.Context, method, path, idempotencyKey string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal mercadopago request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build mercadopago request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mercadopago %s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read mercadopago response: %w", err)
	}
	if httpResp.StatusCode >= 400 {
		g.logger.Warn().Int("status", httpResp.StatusCode).
			Str("path", path).Msg("mercadopago rejeitou a requisição")
		return fmt.Errorf("%w: mercadopago HTTP %d: %s",
			domain.ErrPaymentDeclined, httpResp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode mercadopago response: %w", err)
	}
	return nil
}
