package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PromoterSales é o agregado cru de vendas de uma promotora no período:
// soma dos valores e das unidades das vendas COMPLETED dos PDVs atribuídos
// a ela. Produzido pela DB; o motor de comissões converte em relatório.
type PromoterSales struct {
	PromoterID string
	SalesValue decimal.Decimal
	UnitsSold  int64
	PDVCount   int
}

// SalesAnalyticsRepository define as consultas read-only que alimentam o
// motor de comissões e o painel do depósito.
type SalesAnalyticsRepository interface {
	// GetPromoterSales devolve o agregado por promotora no período. Usa
	// COALESCE para devolver zeros quando não há vendas; promotora sem PDV
	// aparece com PDVCount 0.
	GetPromoterSales(ctx context.Context, start, end time.Time) (map[string]PromoterSales, error)
	// GetSalesMetrics devolve receita bruta e unidades vendidas da rede no
	// período (painel do depósito).
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, units int64, err error)
}
