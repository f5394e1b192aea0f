// Package sales implementa a política de preços do checkout (serviço de
// domínio puro). O mesmo cálculo roda no frontend para exibição; qualquer
// divergência aqui produz recibo diferente do razão.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

// DiscountRate é o desconto para pagamento à vista não financiado
// (PIX ou dinheiro): 10% sobre o subtotal.
var DiscountRate = decimal.NewFromFloat(0.10)

// Totals é o resultado do cálculo de preço de uma venda.
type Totals struct {
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	AppliedCredit decimal.Decimal
	Total         decimal.Decimal
}

// Line é uma linha do carrinho para fins de precificação.
type Line struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal soma quantidade × preço unitário das linhas.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// DiscountFor devolve o desconto do método de pagamento: 10% do subtotal em
// PIX e dinheiro, zero nos demais.
func DiscountFor(paymentMethod string, subtotal decimal.Decimal) decimal.Decimal {
	switch paymentMethod {
	case entity.PaymentMethodPIX, entity.PaymentMethodCash:
		return subtotal.Mul(DiscountRate)
	}
	return decimal.Zero
}

// Compute aplica desconto e crédito sobre o subtotal. O total tem piso em
// zero: crédito maior que o valor devido não gera saldo negativo.
func Compute(paymentMethod string, lines []Line, appliedCredit decimal.Decimal) Totals {
	subtotal := Subtotal(lines)
	discount := DiscountFor(paymentMethod, subtotal)
	total := subtotal.Sub(discount).Sub(appliedCredit)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}
	return Totals{
		Subtotal:      subtotal,
		Discount:      discount,
		AppliedCredit: appliedCredit,
		Total:         total,
	}
}

// InitialStatus devolve o estado de criação da venda conforme o método:
// dinheiro liquida na hora, o resto espera o webhook do gateway.
func InitialStatus(paymentMethod string) string {
	if paymentMethod == entity.PaymentMethodCash {
		return entity.SaleStatusCompleted
	}
	return entity.SaleStatusPending
}

// ValidMethod informa se o método de pagamento é aceito.
func ValidMethod(m string) bool {
	switch m {
	case entity.PaymentMethodPIX, entity.PaymentMethodCard,
		entity.PaymentMethodCash, entity.PaymentMethodInstallment:
		return true
	}
	return false
}
