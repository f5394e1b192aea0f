package entity

// Tipos de localização de estoque. O estoque da rede vive em quatro lugares:
// o depósito central, as maletas das promotoras e os PDVs parceiros; SALE é o
// destino terminal de uma venda (o estoque sai da rede).
const (
	LocationCentral  = "CENTRAL"
	LocationPromoter = "PROMOTER"
	LocationPDV      = "PDV"
	LocationSale     = "SALE"
)

// Location endereça uma linha do razão de estoque: par (tipo, id).
// Não é uma entidade persistida; CENTRAL e SALE usam ID vazio.
type Location struct {
	Tipo string
	ID   string
}

// Central devolve a localização do depósito central.
func Central() Location { return Location{Tipo: LocationCentral} }

// PromoterLoc devolve a localização da maleta de uma promotora.
func PromoterLoc(promoterID string) Location {
	return Location{Tipo: LocationPromoter, ID: promoterID}
}

// PDVLoc devolve a localização de um PDV parceiro.
func PDVLoc(pdvID string) Location {
	return Location{Tipo: LocationPDV, ID: pdvID}
}

// SaleLoc devolve o destino terminal de venda.
func SaleLoc() Location { return Location{Tipo: LocationSale} }

// Valid informa se o tipo da localização é conhecido.
func (l Location) Valid() bool {
	switch l.Tipo {
	case LocationCentral, LocationPromoter, LocationPDV, LocationSale:
		return true
	}
	return false
}

// HasBalance informa se a localização mantém saldo materializado. SALE é o
// sumidouro terminal: não tem saldo, só aparece como ponta de movimentação.
func (l Location) HasBalance() bool {
	switch l.Tipo {
	case LocationCentral, LocationPromoter, LocationPDV:
		return true
	}
	return false
}

// RequiresConfirmation informa se uma transferência para esta localização
// exige conferência física antes de creditar o saldo (promotora ou PDV).
func (l Location) RequiresConfirmation() bool {
	return l.Tipo == LocationPromoter || l.Tipo == LocationPDV
}

// Equal compara tipo e id.
func (l Location) Equal(o Location) bool {
	return l.Tipo == o.Tipo && l.ID == o.ID
}
