package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementação de CustomerRepository (usável com pool ou tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, whatsapp, cpf, origin_pdv_id, created_at, updated_at`

// Create persiste um cliente novo. WhatsApp e CPF vazios entram como NULL
// para não colidir na constraint única.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, whatsapp, cpf, origin_pdv_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Whatsapp, customer.CPF,
		customer.OriginPDVID, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtém um cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByWhatsapp obtém um cliente pelo WhatsApp (primeira chave do checkout).
func (r *CustomerRepo) GetByWhatsapp(whatsapp string) (*entity.Customer, error) {
	return r.getOne(`WHERE whatsapp = $1`, whatsapp)
}

// GetByCPF obtém um cliente pelo CPF.
func (r *CustomerRepo) GetByCPF(cpf string) (*entity.Customer, error) {
	return r.getOne(`WHERE cpf = $1`, cpf)
}

func (r *CustomerRepo) getOne(where string, arg any) (*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(whatsapp, ''), COALESCE(cpf, ''), COALESCE(origin_pdv_id, ''), created_at, updated_at
		FROM customers ` + where
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Whatsapp, &c.CPF, &c.OriginPDVID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes com paginação, por nome.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(whatsapp, ''), COALESCE(cpf, ''), COALESCE(origin_pdv_id, ''), created_at, updated_at
		FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Whatsapp, &c.CPF, &c.OriginPDVID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update atualiza um cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, whatsapp = NULLIF($3, ''), cpf = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Whatsapp, customer.CPF, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}
