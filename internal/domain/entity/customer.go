package entity

import "time"

// Customer representa o cliente final de um PDV.
// CPF é a chave natural de deduplicação; o WhatsApp é a chave secundária
// consultada antes do CPF no fluxo de venda.
type Customer struct {
	ID          string
	Name        string
	Whatsapp    string
	CPF         string
	OriginPDVID string // PDV onde o cadastro foi criado (opcional)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
