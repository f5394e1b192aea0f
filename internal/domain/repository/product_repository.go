package repository

import (
	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência do catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// List busca por nome normalizado (sem acentos) ou SKU; search vazio lista tudo.
	List(search string, limit, offset int) ([]*entity.Product, error)
	UpdatePrices(id string, costPrice, salePrice decimal.Decimal) error
	Update(product *entity.Product) error
	// Delete remove só a linha do catálogo; movimentações e itens de venda
	// preservam a referência ao produto.
	Delete(id string) error
}
