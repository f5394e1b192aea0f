package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/sales"
)

func linhas(qtd int64, preco float64) []sales.Line {
	return []sales.Line{{Quantity: qtd, UnitPrice: decimal.NewFromFloat(preco)}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Desconto à vista: finalTotal == subtotal*0.9 - credito (piso em zero)
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_PixAplicaDezPorcento(t *testing.T) {
	tot := sales.Compute(entity.PaymentMethodPIX, linhas(2, 100), decimal.Zero)

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, tot.Discount.Equal(decimal.NewFromInt(20)), "10%% de 200")
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(180)))
}

func TestCompute_DinheiroAplicaDezPorcento(t *testing.T) {
	tot := sales.Compute(entity.PaymentMethodCash, linhas(1, 150), decimal.Zero)
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(135)))
}

func TestCompute_CartaoSemDesconto(t *testing.T) {
	// CARD: finalTotal == subtotal - credito, sem os 10%.
	tot := sales.Compute(entity.PaymentMethodCard, linhas(2, 100), decimal.NewFromInt(30))
	assert.True(t, tot.Discount.IsZero())
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(170)))
}

func TestCompute_ParceladoSemDesconto(t *testing.T) {
	tot := sales.Compute(entity.PaymentMethodInstallment, linhas(1, 99.90), decimal.Zero)
	assert.True(t, tot.Discount.IsZero())
	assert.True(t, tot.Total.Equal(decimal.NewFromFloat(99.90)))
}

func TestCompute_CreditoComPisoEmZero(t *testing.T) {
	// Crédito maior que o devido não pode deixar o total negativo.
	tot := sales.Compute(entity.PaymentMethodPIX, linhas(1, 50), decimal.NewFromInt(100))
	assert.True(t, tot.Total.IsZero(), "total com piso em zero, obtido %s", tot.Total)
}

func TestCompute_PixComCredito(t *testing.T) {
	tot := sales.Compute(entity.PaymentMethodPIX, linhas(3, 100), decimal.NewFromInt(50))
	// 300 * 0.9 - 50 = 220
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(220)))
}

func TestSubtotal_VariasLinhas(t *testing.T) {
	sub := sales.Subtotal([]sales.Line{
		{Quantity: 2, UnitPrice: decimal.NewFromFloat(49.90)},
		{Quantity: 1, UnitPrice: decimal.NewFromFloat(120)},
	})
	assert.True(t, sub.Equal(decimal.NewFromFloat(219.80)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado inicial por método
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialStatus_DinheiroCompletaNaHora(t *testing.T) {
	assert.Equal(t, entity.SaleStatusCompleted, sales.InitialStatus(entity.PaymentMethodCash))
}

func TestInitialStatus_GatewayFicaPendente(t *testing.T) {
	assert.Equal(t, entity.SaleStatusPending, sales.InitialStatus(entity.PaymentMethodPIX))
	assert.Equal(t, entity.SaleStatusPending, sales.InitialStatus(entity.PaymentMethodCard))
	assert.Equal(t, entity.SaleStatusPending, sales.InitialStatus(entity.PaymentMethodInstallment))
}

func TestValidMethod(t *testing.T) {
	assert.True(t, sales.ValidMethod("PIX"))
	assert.True(t, sales.ValidMethod("CASH"))
	assert.False(t, sales.ValidMethod("BOLETO"))
	assert.False(t, sales.ValidMethod(""))
}
