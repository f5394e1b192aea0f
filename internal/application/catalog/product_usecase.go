// Package catalog contém os casos de uso do catálogo de peças.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ProductUseCase CRUD do catálogo. SKU é identidade imutável; preços são
// editados por uma operação própria para o histórico de margem ficar
// rastreável no log.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create cadastra uma peça. ErrDuplicate se o SKU já existe.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// Pré-checagem amigável; a constraint UNIQUE do banco é o backstop.
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devolve a peça ou nil se não existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List busca no catálogo. A busca é por nome sem acentos ou SKU; search
// vazio lista tudo paginado.
func (uc *ProductUseCase) List(search string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update altera nome e categoria. Campos vazios mantêm o valor atual.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdatePrices altera custo e preço de venda da peça.
func (uc *ProductUseCase) UpdatePrices(id string, in dto.UpdateProductPricesRequest) (*dto.ProductResponse, error) {
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.productRepo.UpdatePrices(id, in.CostPrice, in.SalePrice); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Delete remove a peça do catálogo. Movimentações e itens de venda que a
// referenciam são preservados.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
	}
}
