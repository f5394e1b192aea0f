package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ReceiptLine linha do recibo já resolvida contra o catálogo.
type ReceiptLine struct {
	SKU         string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ReceiptData é tudo que o gerador de PDF precisa para montar o recibo.
type ReceiptData struct {
	Sale         *entity.Sale
	CustomerName string
	Lines        []ReceiptLine
}

// ReceiptGenerator renderiza o recibo da venda em PDF.
type ReceiptGenerator interface {
	Generate(data ReceiptData) ([]byte, error)
}

// ReceiptUseCase monta os dados do recibo e delega a renderização.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase constrói o caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// Receipt gera o PDF do recibo da venda. Os valores saem da venda gravada,
// nunca recalculados: o recibo bate com o que o checkout cobrou.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}

	data := ReceiptData{Sale: sale, Lines: make([]ReceiptLine, 0, len(items))}
	for _, item := range items {
		line := ReceiptLine{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		}
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			line.SKU = product.SKU
			line.ProductName = product.Name
		}
		data.Lines = append(data.Lines, line)
	}

	if sale.CustomerID != "" {
		if customer, err := uc.customerRepo.GetByID(sale.CustomerID); err == nil && customer != nil {
			data.CustomerName = customer.Name
		}
	}

	return uc.generator.Generate(data)
}
