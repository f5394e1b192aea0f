package repository

import "github.com/aurora-folheados/aurora-api/internal/domain/entity"

// UserRepository define o porto de persistência de usuários (admin,
// promotoras, operadores de PDV).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// ListActivePromoters devolve as promotoras ativas (para o relatório
	// mensal de comissões).
	ListActivePromoters() ([]*entity.User, error)
	// ListDirectReports devolve as promotoras cujo superior_id é o dado
	// (um nível, sem recursão).
	ListDirectReports(superiorID string) ([]*entity.User, error)
	// ListAssignedPDVs devolve os PDVs atendidos pela promotora.
	ListAssignedPDVs(promoterID string) ([]*entity.User, error)
	Update(user *entity.User) error
}
