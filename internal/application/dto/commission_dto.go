package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionReportEntry uma linha do relatório mensal: uma promotora ativa.
// Tudo derivado na hora da consulta, exceto PaymentStatus (autorização
// persistida).
type CommissionReportEntry struct {
	PromoterID     string          `json:"promoter_id"`
	PromoterName   string          `json:"promoter_name"`
	Tier           string          `json:"tier"`
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	TeamSales      decimal.Decimal `json:"team_sales"` // só coordenadoras
	PDVCount       int             `json:"pdv_count"`
	Turnover       decimal.Decimal `json:"turnover"`
	BaseRate       decimal.Decimal `json:"base_rate"`
	TriggerMet     bool            `json:"trigger_met"`
	Commission     decimal.Decimal `json:"commission_generated"`
	Override       decimal.Decimal `json:"overriding_generated"`
	TotalPayable   decimal.Decimal `json:"total_payable"`
	PaymentStatus  string          `json:"payment_status"` // PENDING | PAID
	PaidAmount     decimal.Decimal `json:"paid_amount,omitempty"`
}

// CommissionReportResponse relatório completo do mês.
type CommissionReportResponse struct {
	Month   int                     `json:"month"`
	Year    int                     `json:"year"`
	Entries []CommissionReportEntry `json:"entries"`
}

// NetworkMetricsResponse receita e unidades vendidas da rede no mês.
type NetworkMetricsResponse struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Revenue   decimal.Decimal `json:"revenue"`
	UnitsSold int64           `json:"units_sold"`
}

// AuthorizeCommissionRequest body para POST /api/commissions/authorize.
type AuthorizeCommissionRequest struct {
	PromoterID string          `json:"promoter_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
}

// CommissionAuthorizationResponse autorização de pagamento nas respostas.
type CommissionAuthorizationResponse struct {
	ID         string          `json:"id"`
	PromoterID string          `json:"promoter_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Status     string          `json:"status"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}
