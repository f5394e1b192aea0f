package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação do razão de movimentações sobre PostgreSQL
// (usável com pool ou tx). Linhas são imutáveis exceto pela confirmação.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, quantity, origin_tipo, origin_id,
	destination_tipo, destination_id, type, status, reference, created_by,
	created_at, confirmed_at`

// Create insere uma linha do razão.
func (r *MovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Quantity,
		m.Origin.Tipo, m.Origin.ID, m.Destination.Tipo, m.Destination.ID,
		m.Type, m.Status, m.Reference, m.CreatedBy, m.CreatedAt, m.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtém uma movimentação por ID.
func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ConfirmPending aplica a conferência: só linhas ainda PENDING entre os ids
// dados mudam para APPLIED. O RETURNING devolve exatamente o que mudou; o
// caller compara com o pedido para rejeitar reconfirmação.
func (r *MovementRepo) ConfirmPending(ids []string, confirmedAt time.Time) ([]*entity.StockMovement, error) {
	query := `
		UPDATE stock_movements
		SET status = $2, confirmed_at = $3
		WHERE id = ANY($1) AND status = $4
		RETURNING ` + movementColumns
	rows, err := r.q.Query(context.Background(), query,
		ids, entity.MovementStatusApplied, confirmedAt, entity.MovementStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("confirm movements: %w", err)
	}
	defer rows.Close()
	var confirmed []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan confirmed movement: %w", err)
		}
		confirmed = append(confirmed, m)
	}
	return confirmed, rows.Err()
}

// PendingFor lista as transferências não confirmadas endereçadas à
// localização, mais recentes primeiro.
func (r *MovementRepo) PendingFor(loc entity.Location) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE destination_tipo = $1 AND destination_id = $2 AND status = $3
		ORDER BY created_at DESC`
	return r.queryMovements(query, loc.Tipo, loc.ID, entity.MovementStatusPending)
}

// ListByProduct lista o histórico de um produto com paginação.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryMovements(query, productID, limit, offset)
}

// ListByReference lista as movimentações de uma referência (ex.: venda).
func (r *MovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE reference = $1 ORDER BY created_at`
	return r.queryMovements(query, reference)
}

func (r *MovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Quantity,
		&m.Origin.Tipo, &m.Origin.ID, &m.Destination.Tipo, &m.Destination.ID,
		&m.Type, &m.Status, &m.Reference, &m.CreatedBy, &m.CreatedAt, &m.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
