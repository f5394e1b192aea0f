package dto

// LocationDTO par (tipo, id) que endereça uma linha do razão.
type LocationDTO struct {
	Tipo string `json:"tipo"` // CENTRAL | PROMOTER | PDV | SALE
	ID   string `json:"id,omitempty"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID   string      `json:"product_id"`
	Quantity    int64       `json:"quantity"`
	Origin      LocationDTO `json:"origin"`
	Destination LocationDTO `json:"destination"`
	Type        string      `json:"type"` // TRANSFER | ADJUSTMENT | RETURN
	Reference   string      `json:"reference,omitempty"`
}

// BatchMovementRequest body para POST /api/inventory/movements/batch
// (auditoria de PDV submetendo vários acertos de uma vez).
type BatchMovementRequest struct {
	Movements []RegisterMovementRequest `json:"movements"`
}

// BatchMovementResponse resultado do lote: inserções são sequenciais e
// independentes, então uma falha no meio deixa as anteriores gravadas.
type BatchMovementResponse struct {
	Registered int    `json:"registered"`
	FailedAt   int    `json:"failed_at,omitempty"` // índice da primeira falha
	Error      string `json:"error,omitempty"`
}

// ConfirmMovementsRequest body para POST /api/inventory/movements/confirm.
type ConfirmMovementsRequest struct {
	MovementIDs []string `json:"movement_ids"`
}

// MovementResponse linha do razão nas respostas.
type MovementResponse struct {
	ID          string      `json:"id"`
	ProductID   string      `json:"product_id"`
	Quantity    int64       `json:"quantity"`
	Origin      LocationDTO `json:"origin"`
	Destination LocationDTO `json:"destination"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	ConfirmedAt string      `json:"confirmed_at,omitempty"`
}

// PendingGroupDTO movimentações pendentes agrupadas por data de criação
// (formato de exibição da tela de conferência).
type PendingGroupDTO struct {
	Date      string             `json:"date"` // YYYY-MM-DD
	Movements []MovementResponse `json:"movements"`
}

// CentralLevelDTO linha da projeção do depósito: saldo central + em campo.
type CentralLevelDTO struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	ProductName    string `json:"product_name"`
	CentralBalance int64  `json:"central_balance"`
	FieldBalance   int64  `json:"field_balance"`
}

// LocationItemDTO saldo de um produto em uma localização, com a flag de
// estoque baixo derivada do limiar do tipo (PDV < 3, promotora < 5).
type LocationItemDTO struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	LowStock    bool   `json:"low_stock"`
}
