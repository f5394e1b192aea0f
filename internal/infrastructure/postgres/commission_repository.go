package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo persiste as autorizações de pagamento de comissão,
// chaveadas por (promotora, mês, ano).
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

// UpsertAuthorization grava a marcação PAID de forma idempotente: a
// constraint única (promoter_id, month, year) faz a repetição atualizar a
// mesma linha.
func (r *CommissionRepo) UpsertAuthorization(auth *entity.CommissionAuthorization) error {
	query := `
		INSERT INTO commission_authorizations (id, promoter_id, month, year, status, paid_amount, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (promoter_id, month, year)
		DO UPDATE SET status = EXCLUDED.status, paid_amount = EXCLUDED.paid_amount,
			paid_at = EXCLUDED.paid_at, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		auth.ID, auth.PromoterID, auth.Month, auth.Year, auth.Status,
		auth.PaidAmount, auth.PaidAt, auth.CreatedAt, auth.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert commission authorization: %w", err)
	}
	return nil
}

// GetAuthorization devolve a marcação da promotora no mês ou nil (= PENDING).
func (r *CommissionRepo) GetAuthorization(promoterID string, month, year int) (*entity.CommissionAuthorization, error) {
	query := `
		SELECT id, promoter_id, month, year, status, paid_amount, paid_at, created_at, updated_at
		FROM commission_authorizations
		WHERE promoter_id = $1 AND month = $2 AND year = $3`
	var a entity.CommissionAuthorization
	err := r.q.QueryRow(context.Background(), query, promoterID, month, year).Scan(
		&a.ID, &a.PromoterID, &a.Month, &a.Year, &a.Status, &a.PaidAmount,
		&a.PaidAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission authorization: %w", err)
	}
	return &a, nil
}

// ListAuthorizations lista as marcações do mês.
func (r *CommissionRepo) ListAuthorizations(month, year int) ([]*entity.CommissionAuthorization, error) {
	query := `
		SELECT id, promoter_id, month, year, status, paid_amount, paid_at, created_at, updated_at
		FROM commission_authorizations WHERE month = $1 AND year = $2`
	rows, err := r.q.Query(context.Background(), query, month, year)
	if err != nil {
		return nil, fmt.Errorf("list commission authorizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.CommissionAuthorization
	for rows.Next() {
		var a entity.CommissionAuthorization
		if err := rows.Scan(&a.ID, &a.PromoterID, &a.Month, &a.Year, &a.Status,
			&a.PaidAmount, &a.PaidAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan commission authorization: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
