package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de autorização de pagamento de comissão.
const (
	CommissionStatusPending = "PENDING"
	CommissionStatusPaid    = "PAID"
)

// CommissionAuthorization é o único pedaço persistido do motor de comissões:
// a marcação PENDING/PAID por (promotora, mês, ano). O relatório em si é
// derivado a cada consulta, nunca armazenado.
type CommissionAuthorization struct {
	ID         string
	PromoterID string
	Month      int
	Year       int
	Status     string
	PaidAmount decimal.Decimal
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
