package repository

import "github.com/aurora-folheados/aurora-api/internal/domain/entity"

// SaleRepository define o porto de persistência de vendas e seus itens.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	ListByPDV(pdvID string, limit, offset int) ([]*entity.Sale, error)
	// UpdateStatus troca o estado da venda; o filtro fromStatus torna a
	// transição idempotente (webhook reentregue não reaplica nada).
	UpdateStatus(id, fromStatus, toStatus string) (bool, error)
	// SetGateway grava gateway, id externo e payload Pix após o handoff.
	SetGateway(id, gateway, gatewayID, pixPayload string) error
}
