package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*SalesAnalyticsRepo)(nil)

// SalesAnalyticsRepo consultas read-only que alimentam o motor de comissões
// e o painel do depósito.
type SalesAnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewSalesAnalyticsRepository constrói o adaptador de analítica.
func NewSalesAnalyticsRepository(pool *pgxpool.Pool) *SalesAnalyticsRepo {
	return &SalesAnalyticsRepo{pool: pool}
}

// GetPromoterSales agrega por promotora as vendas COMPLETED dos PDVs
// atribuídos a ela no período [start, end). Duas consultas: o agregado de
// vendas e a contagem de PDVs — promotora com PDVs mas sem venda precisa
// aparecer com PDVCount correto (o gatilho de giro depende dele).
func (r *SalesAnalyticsRepo) GetPromoterSales(
	ctx context.Context,
	start, end time.Time,
) (map[string]repository.PromoterSales, error) {
	results := make(map[string]repository.PromoterSales)

	const countQuery = `
	SELECT promoter_id, COUNT(*) AS pdv_count
	FROM users
	WHERE role = 'pdv' AND promoter_id IS NOT NULL
	GROUP BY promoter_id`

	rows, err := r.pool.Query(ctx, countQuery)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPromoterSales pdv count: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var promoterID string
		var pdvCount int
		if err := rows.Scan(&promoterID, &pdvCount); err != nil {
			return nil, fmt.Errorf("analytics.GetPromoterSales scan count: %w", err)
		}
		results[promoterID] = repository.PromoterSales{
			PromoterID: promoterID,
			SalesValue: decimal.Zero,
			PDVCount:   pdvCount,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetPromoterSales rows: %w", err)
	}

	// Os itens entram pré-agregados por venda: o JOIN direto multiplicaria
	// SUM(s.total) pelo número de linhas da venda.
	const salesQuery = `
	SELECT
	    pdv.promoter_id,
	    COALESCE(SUM(s.total),    0) AS sales_value,
	    COALESCE(SUM(iq.units),   0) AS units_sold
	FROM sales s
	JOIN users pdv ON pdv.id = s.pdv_id
	JOIN (
	    SELECT sale_id, SUM(quantity) AS units
	    FROM sale_items GROUP BY sale_id
	) iq ON iq.sale_id = s.id
	WHERE s.status = 'COMPLETED'
	  AND s.created_at >= $1 AND s.created_at < $2
	  AND pdv.promoter_id IS NOT NULL
	GROUP BY pdv.promoter_id`

	rows, err = r.pool.Query(ctx, salesQuery, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPromoterSales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var promoterID string
		var salesValue decimal.Decimal
		var unitsSold int64
		if err := rows.Scan(&promoterID, &salesValue, &unitsSold); err != nil {
			return nil, fmt.Errorf("analytics.GetPromoterSales scan: %w", err)
		}
		agg := results[promoterID]
		agg.PromoterID = promoterID
		agg.SalesValue = salesValue
		agg.UnitsSold = unitsSold
		results[promoterID] = agg
	}
	return results, rows.Err()
}

// GetSalesMetrics devolve receita bruta e unidades vendidas da rede no
// período (painel do depósito). COALESCE devolve zeros para período sem
// vendas.
func (r *SalesAnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	start, end time.Time,
) (revenue decimal.Decimal, units int64, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total),  0) AS revenue,
	    COALESCE(SUM(iq.units), 0) AS units
	FROM sales s
	JOIN (
	    SELECT sale_id, SUM(quantity) AS units
	    FROM sale_items GROUP BY sale_id
	) iq ON iq.sale_id = s.id
	WHERE s.status = 'COMPLETED'
	  AND s.created_at >= $1 AND s.created_at < $2`

	err = r.pool.QueryRow(ctx, query, start, end).Scan(&revenue, &units)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, units, nil
}
