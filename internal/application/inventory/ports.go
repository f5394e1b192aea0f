package inventory

import (
	"context"

	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade do razão: débito de
// origem, crédito de destino e linha de movimentação entram juntos ou nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		productRepo repository.ProductRepository,
	) error) error
}
