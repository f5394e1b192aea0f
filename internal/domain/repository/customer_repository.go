package repository

import "github.com/aurora-folheados/aurora-api/internal/domain/entity"

// CustomerRepository define o porto de persistência de clientes finais.
// O fluxo de venda consulta por WhatsApp antes de CPF (ordem do checkout).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByWhatsapp(whatsapp string) (*entity.Customer, error)
	GetByCPF(cpf string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
