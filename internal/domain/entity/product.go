package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa uma peça do catálogo (folheados). Identidade imutável
// pelo SKU; preços editáveis pelo admin do catálogo. A exclusão remove só a
// linha do catálogo: movimentações e itens de venda preservam a referência.
type Product struct {
	ID        string
	SKU       string // único no catálogo
	Name      string
	Category  string
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
