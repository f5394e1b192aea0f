package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos vazios
// mantêm o valor atual; preços são alterados só pela rota de preços.
type UpdateProductRequest struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// UpdateProductPricesRequest body para PATCH /api/products/:id/prices.
type UpdateProductPricesRequest struct {
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// ProductResponse produto nas respostas.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}
