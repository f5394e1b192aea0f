package dto

import "github.com/shopspring/decimal"

// SaleItemRequest linha do carrinho (produto, quantidade, preço unitário).
// UnitPrice zero usa o preço de catálogo vigente.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
// CardToken vem da tokenização client-side; dados de cartão nunca chegam
// a este backend.
type CreateSaleRequest struct {
	PDVID         string            `json:"pdv_id"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"` // PIX | CARD | CASH | INSTALLMENT
	Customer      *CustomerInput    `json:"customer,omitempty"`
	AppliedCredit decimal.Decimal   `json:"applied_credit"`
	CardToken     string            `json:"card_token,omitempty"`
}

// SaleItemResponse linha da venda na resposta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse venda com itens para POST/GET /api/sales.
type SaleResponse struct {
	ID            string             `json:"id"`
	PDVID         string             `json:"pdv_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	AppliedCredit decimal.Decimal    `json:"applied_credit"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"` // PENDING | COMPLETED | CANCELLED
	PixPayload    string             `json:"pix_payload,omitempty"`
	PixQRCode     string             `json:"pix_qr_code,omitempty"`
	CreatedAt     string             `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleStatusDTO payload leve empurrado pelo canal websocket quando o
// webhook do gateway muda o estado da venda.
type SaleStatusDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
