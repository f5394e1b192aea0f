package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora-folheados/aurora-api/internal/application/sales"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/pkg/config"
)

func newTestAsaas(baseURL string) *Asaas {
	return NewAsaas(config.AsaasConfig{APIKey: "test-key", BaseURL: baseURL}, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseWebhook — o corpo do Asaas traz a referência externa direto
// ──────────────────────────────────────────────────────────────────────────────

func TestAsaasParseWebhook_PagamentoConfirmado(t *testing.T) {
	g := newTestAsaas("")
	body := []byte(`{
		"event": "PAYMENT_CONFIRMED",
		"payment": {"id": "pay_123", "status": "CONFIRMED", "externalReference": "venda-1"}
	}`)

	event, err := g.ParseWebhook(context.Background(), body)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "venda-1", event.SaleID)
	assert.True(t, event.Approved)
}

func TestAsaasParseWebhook_PagamentoRecusado(t *testing.T) {
	g := newTestAsaas("")
	body := []byte(`{
		"event": "PAYMENT_REPROVED_BY_RISK_ANALYSIS",
		"payment": {"id": "pay_123", "externalReference": "venda-2"}
	}`)

	event, err := g.ParseWebhook(context.Background(), body)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "venda-2", event.SaleID)
	assert.False(t, event.Approved)
}

// Evento que não é de pagamento (ou sem referência) vira no-op, não erro.
func TestAsaasParseWebhook_EventoIrrelevante(t *testing.T) {
	g := newTestAsaas("")

	event, err := g.ParseWebhook(context.Background(), []byte(`{"event": "PAYMENT_CREATED", "payment": {"externalReference": "venda-3"}}`))
	require.NoError(t, err)
	assert.Nil(t, event, "PAYMENT_CREATED não transiciona a venda")

	event, err = g.ParseWebhook(context.Background(), []byte(`{"event": "PAYMENT_CONFIRMED", "payment": {}}`))
	require.NoError(t, err)
	assert.Nil(t, event, "sem referência externa não há venda a atualizar")
}

func TestAsaasParseWebhook_CorpoInvalido(t *testing.T) {
	g := newTestAsaas("")
	_, err := g.ParseWebhook(context.Background(), []byte(`nao é json`))
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePayment — PIX faz a chamada extra do QR code
// ──────────────────────────────────────────────────────────────────────────────

func TestAsaasCreatePayment_PixBuscaQRCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("access_token"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v3/payments":
			w.Write([]byte(`{"id": "pay_9", "status": "PENDING", "externalReference": "venda-9"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v3/payments/pay_9/pixQrCode":
			w.Write([]byte(`{"encodedImage": "img-base64", "payload": "copia-e-cola"}`))
		default:
			t.Errorf("chamada inesperada: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	g := newTestAsaas(srv.URL)
	result, err := g.CreatePayment(context.Background(), sales.PaymentRequest{
		SaleID: "venda-9",
		Amount: decimal.NewFromInt(45),
		Method: entity.PaymentMethodPIX,
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_9", result.GatewayID)
	assert.False(t, result.Approved, "Pix fica pendente até o webhook")
	assert.Equal(t, "copia-e-cola", result.PixPayload)
	assert.Equal(t, "img-base64", result.PixQRCode)
}

func TestAsaasCreatePayment_ErroHTTPViraPaymentDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors": [{"description": "cartão inválido"}]}`))
	}))
	defer srv.Close()

	g := newTestAsaas(srv.URL)
	_, err := g.CreatePayment(context.Background(), sales.PaymentRequest{
		SaleID:    "venda-10",
		Amount:    decimal.NewFromInt(100),
		Method:    entity.PaymentMethodCard,
		CardToken: "tok_x",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Contains(t, err.Error(), "cartão inválido")
}
