package inventory

import (
	"context"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ProjectionUseCase deriva os saldos atuais a partir das tabelas
// materializadas. Sem camada de cache: toda chamada relê o estado corrente
// (o valor é o retorno da agregação, recalculado por requisição).
type ProjectionUseCase struct {
	balanceRepo repository.BalanceRepository
}

// NewProjectionUseCase constrói o caso de uso.
func NewProjectionUseCase(balanceRepo repository.BalanceRepository) *ProjectionUseCase {
	return &ProjectionUseCase{balanceRepo: balanceRepo}
}

// CentralLevels devolve, por produto do catálogo, o saldo do depósito
// central e o total em campo (soma de promotoras + PDVs). Produto recém
// criado sem movimentação aparece com zeros, nunca erro.
func (uc *ProjectionUseCase) CentralLevels(ctx context.Context) ([]dto.CentralLevelDTO, error) {
	rows, err := uc.balanceRepo.CentralLevels()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CentralLevelDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CentralLevelDTO{
			ProductID:      r.ProductID,
			SKU:            r.SKU,
			ProductName:    r.ProductName,
			CentralBalance: r.CentralBalance,
			FieldBalance:   r.FieldBalance,
		})
	}
	return out, nil
}

// ItemsFor devolve os saldos de uma localização com a flag LOW_STOCK
// derivada do limiar do tipo (PDV < 3, promotora < 5).
func (uc *ProjectionUseCase) ItemsFor(ctx context.Context, loc entity.Location) ([]dto.LocationItemDTO, error) {
	if !loc.Valid() || !loc.HasBalance() {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.balanceRepo.ItemsFor(loc)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationItemDTO, 0, len(rows))
	for _, r := range rows {
		b := entity.StockBalance{LocationTipo: loc.Tipo, Quantity: r.Quantity}
		out = append(out, dto.LocationItemDTO{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			LowStock:    b.LowStock(),
		})
	}
	return out, nil
}
