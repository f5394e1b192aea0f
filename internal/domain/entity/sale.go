package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento aceitos no checkout.
const (
	PaymentMethodPIX         = "PIX"
	PaymentMethodCard        = "CARD"
	PaymentMethodCash        = "CASH"
	PaymentMethodInstallment = "INSTALLMENT"
)

// Estados de uma venda. CASH nasce COMPLETED; os demais métodos nascem
// PENDING até o webhook do gateway confirmar o pagamento.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Sale representa uma venda de um PDV a um cliente final.
// Subtotal, desconto e crédito ficam gravados para o recibo bater com o
// que o checkout exibiu.
type Sale struct {
	ID            string
	PDVID         string
	CustomerID    string // opcional (venda sem identificação)
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal // 10% do subtotal em PIX/CASH
	AppliedCredit decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	Gateway       string // mercadopago | asaas (vazio em CASH)
	GatewayID     string // id do pagamento no gateway
	PixPayload    string // copia-e-cola Pix, quando houver
	CreatedBy     string // UserID do operador do PDV
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem é uma linha da venda com o preço unitário congelado no momento
// da venda (alterações de catálogo não reescrevem vendas passadas).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}
