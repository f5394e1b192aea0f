package repository

import "github.com/aurora-folheados/aurora-api/internal/domain/entity"

// CommissionRepository define o porto da autorização de pagamento de
// comissão — a única parte persistida do motor, chaveada por
// (promotora, mês, ano).
type CommissionRepository interface {
	// UpsertAuthorization grava PAID de forma idempotente: repetir a chamada
	// com a mesma chave atualiza a mesma linha.
	UpsertAuthorization(auth *entity.CommissionAuthorization) error
	// GetAuthorization devolve a última marcação ou nil (= PENDING).
	GetAuthorization(promoterID string, month, year int) (*entity.CommissionAuthorization, error)
	ListAuthorizations(month, year int) ([]*entity.CommissionAuthorization, error)
}
