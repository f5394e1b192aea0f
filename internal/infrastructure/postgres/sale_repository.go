package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL (usável com pool
// ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, pdv_id, customer_id, subtotal, discount, applied_credit,
	total, payment_method, status, gateway, gateway_id, pix_payload, created_by,
	created_at, updated_at`

// Create persiste o cabeçalho da venda.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.PDVID, sale.CustomerID,
		sale.Subtotal, sale.Discount, sale.AppliedCredit, sale.Total,
		sale.PaymentMethod, sale.Status,
		sale.Gateway, sale.GatewayID, sale.PixPayload,
		sale.CreatedBy, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da venda com o preço unitário congelado.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtém uma venda por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, pdv_id, COALESCE(customer_id, ''), subtotal, discount, applied_credit,
			total, payment_method, status, gateway, gateway_id, pix_payload, created_by,
			created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PDVID, &s.CustomerID, &s.Subtotal, &s.Discount, &s.AppliedCredit,
		&s.Total, &s.PaymentMethod, &s.Status, &s.Gateway, &s.GatewayID, &s.PixPayload,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItems lista os itens de uma venda.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByPDV lista as vendas de um PDV, mais recentes primeiro.
func (r *SaleRepo) ListByPDV(pdvID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, pdv_id, COALESCE(customer_id, ''), subtotal, discount, applied_credit,
			total, payment_method, status, gateway, gateway_id, pix_payload, created_by,
			created_at, updated_at
		FROM sales WHERE pdv_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, pdvID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.PDVID, &s.CustomerID, &s.Subtotal, &s.Discount,
			&s.AppliedCredit, &s.Total, &s.PaymentMethod, &s.Status, &s.Gateway,
			&s.GatewayID, &s.PixPayload, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus troca o estado da venda. O filtro por fromStatus torna a
// transição idempotente: o webhook reentregue não encontra linha para mudar.
func (r *SaleRepo) UpdateStatus(id, fromStatus, toStatus string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, fromStatus, toStatus,
	)
	if err != nil {
		return false, fmt.Errorf("update sale status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetGateway grava gateway, id externo e payload Pix após o handoff.
func (r *SaleRepo) SetGateway(id, gateway, gatewayID, pixPayload string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET gateway = $2, gateway_id = $3, pix_payload = $4, updated_at = now() WHERE id = $1`,
		id, gateway, gatewayID, pixPayload,
	)
	if err != nil {
		return fmt.Errorf("set sale gateway: %w", err)
	}
	return nil
}
