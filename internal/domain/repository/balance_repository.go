package repository

import "github.com/aurora-folheados/aurora-api/internal/domain/entity"

// CentralLevel é a linha crua da projeção do depósito: saldo central e total
// em campo (promotoras + PDVs) por produto. Produzida pela DB; o use case
// converte em DTO.
type CentralLevel struct {
	ProductID      string
	SKU            string
	ProductName    string
	CentralBalance int64
	FieldBalance   int64
}

// LocationItem é a linha crua dos saldos de uma localização, já com os dados
// de catálogo para exibição.
type LocationItem struct {
	ProductID   string
	SKU         string
	ProductName string
	Quantity    int64
}

// BalanceRepository define o porto dos saldos materializados por
// produto × localização. Usado dentro de transações com bloqueio de fila
// para garantir consistência dos débitos.
type BalanceRepository interface {
	// Get devolve o saldo atual; produto sem movimentação equivale a saldo
	// zero (nunca erro, nunca nil).
	Get(productID string, loc entity.Location) (*entity.StockBalance, error)
	// GetForUpdate bloqueia a fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID string, loc entity.Location) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// CentralLevels devolve, por produto do catálogo, saldo central e total
	// em campo. LEFT JOIN garante linha com zeros para produto sem saldo.
	CentralLevels() ([]CentralLevel, error)
	// ItemsFor devolve os saldos de uma localização (promotora ou PDV).
	ItemsFor(loc entity.Location) ([]LocationItem, error)
}
