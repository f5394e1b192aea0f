package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementação dos saldos materializados por
// produto × localização (usável com pool ou tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository constrói o adaptador de saldos. Passar pool ou tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtém o saldo atual. Produto sem linha equivale a saldo zero.
func (r *BalanceRepo) Get(productID string, loc entity.Location) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, location_tipo, location_id, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND location_tipo = $2 AND location_id = $3`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, loc.Tipo, loc.ID).Scan(
		&b.ProductID, &b.LocationTipo, &b.LocationID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ProductID: productID, LocationTipo: loc.Tipo, LocationID: loc.ID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtém o saldo bloqueando a linha (SELECT FOR UPDATE).
// Localização sem linha ganha uma linha zerada antes do bloqueio: sem ela o
// FOR UPDATE não trava nada e dois primeiros créditos concorrentes à mesma
// localização leriam ambos zero, perdendo um dos dois.
func (r *BalanceRepo) GetForUpdate(productID string, loc entity.Location) (*entity.StockBalance, error) {
	seed := `
		INSERT INTO stock_balances (product_id, location_tipo, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, location_tipo, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID, loc.Tipo, loc.ID); err != nil {
		return nil, fmt.Errorf("seed balance: %w", err)
	}

	query := `
		SELECT product_id, location_tipo, location_id, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND location_tipo = $2 AND location_id = $3
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, loc.Tipo, loc.ID).Scan(
		&b.ProductID, &b.LocationTipo, &b.LocationID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert insere ou atualiza a quantidade (por produto e localização).
func (r *BalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, location_tipo, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_tipo, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.LocationTipo, balance.LocationID, balance.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// CentralLevels devolve, por produto do catálogo, o saldo do depósito central
// e o total em campo (promotoras + PDVs). O LEFT JOIN garante linha com zeros
// para produto recém criado sem movimentação.
func (r *BalanceRepo) CentralLevels() ([]repository.CentralLevel, error) {
	const query = `
	SELECT
	    p.id   AS product_id,
	    p.sku,
	    p.name AS product_name,
	    COALESCE(SUM(b.quantity) FILTER (WHERE b.location_tipo = 'CENTRAL'),           0) AS central_balance,
	    COALESCE(SUM(b.quantity) FILTER (WHERE b.location_tipo IN ('PROMOTER','PDV')), 0) AS field_balance
	FROM products p
	LEFT JOIN stock_balances b ON b.product_id = p.id
	GROUP BY p.id, p.sku, p.name
	ORDER BY p.name`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("central levels: %w", err)
	}
	defer rows.Close()
	var results []repository.CentralLevel
	for rows.Next() {
		var row repository.CentralLevel
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName,
			&row.CentralBalance, &row.FieldBalance); err != nil {
			return nil, fmt.Errorf("scan central level: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ItemsFor devolve os saldos de uma localização com os dados de catálogo.
// Só linhas com saldo positivo: peça zerada some da maleta/vitrine.
func (r *BalanceRepo) ItemsFor(loc entity.Location) ([]repository.LocationItem, error) {
	const query = `
	SELECT b.product_id, p.sku, p.name AS product_name, b.quantity
	FROM stock_balances b
	JOIN products p ON p.id = b.product_id
	WHERE b.location_tipo = $1 AND b.location_id = $2 AND b.quantity > 0
	ORDER BY p.name`

	rows, err := r.q.Query(context.Background(), query, loc.Tipo, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("items for location: %w", err)
	}
	defer rows.Close()
	var results []repository.LocationItem
	for rows.Next() {
		var row repository.LocationItem
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan location item: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
