package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementTypeTRANSFER   = "TRANSFER"   // remessa entre localizações
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de contagem (auditoria)
	MovementTypeSALE       = "SALE"       // baixa por venda no PDV
	MovementTypeRETURN     = "RETURN"     // devolução (estorno de venda)
)

// Estados de uma movimentação. Uma TRANSFER com destino promotora/PDV nasce
// PENDING: o saldo de origem já foi debitado (mercadoria em trânsito), mas o
// destino só é creditado na conferência. Os demais tipos nascem APPLIED.
// O estado é explícito para que reconfirmar seja irrepresentável, em vez de
// inferido de um timestamp nulo.
const (
	MovementStatusPending = "PENDING"
	MovementStatusApplied = "APPLIED"
)

// StockMovement é uma linha imutável do razão de estoque. Criada uma vez e
// mutada exatamente uma vez (Confirm seta status + confirmed_at); nunca
// apagada nem reconfirmada.
type StockMovement struct {
	ID          string
	ProductID   string
	Quantity    int64 // sempre positiva; a direção vem de origem/destino
	Origin      Location
	Destination Location
	Type        string // TRANSFER, ADJUSTMENT, SALE, RETURN
	Status      string // PENDING, APPLIED
	Reference   string // id da venda ou da auditoria que originou a linha
	CreatedBy   string // UserID
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

// Pending informa se a movimentação aguarda conferência no destino.
func (m *StockMovement) Pending() bool {
	return m.Status == MovementStatusPending
}
