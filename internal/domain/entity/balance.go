package entity

import "time"

// StockBalance é o saldo materializado de um produto em uma localização:
// soma das entradas confirmadas menos as saídas. Produto sem movimentação
// equivale a saldo zero (nunca erro).
type StockBalance struct {
	ProductID    string
	LocationTipo string
	LocationID   string
	Quantity     int64
	UpdatedAt    time.Time
}

// Limiares de estoque baixo por tipo de localização (constantes fixas,
// não configuráveis).
const (
	LowStockPDV      = 3
	LowStockPromoter = 5
)

// LowStock informa se o saldo está abaixo do limiar do tipo de localização.
func (b *StockBalance) LowStock() bool {
	switch b.LocationTipo {
	case LocationPDV:
		return b.Quantity < LowStockPDV
	case LocationPromoter:
		return b.Quantity < LowStockPromoter
	}
	return false
}
