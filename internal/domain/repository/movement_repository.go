package repository

import (
	"time"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

// MovementRepository define o porto do razão de movimentações.
// Linhas são inseridas uma vez; a única mutação permitida é a confirmação
// (status PENDING → APPLIED + confirmed_at).
type MovementRepository interface {
	Create(m *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ConfirmPending marca como APPLIED exatamente as linhas PENDING entre os
	// ids dados e devolve as linhas confirmadas. Linhas já aplicadas são
	// ignoradas pelo filtro de status (reconfirmar é irrepresentável).
	ConfirmPending(ids []string, confirmedAt time.Time) ([]*entity.StockMovement, error)
	// PendingFor lista as TRANSFER não confirmadas endereçadas à localização,
	// mais recentes primeiro (o handler agrupa por data de criação).
	PendingFor(loc entity.Location) ([]*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
