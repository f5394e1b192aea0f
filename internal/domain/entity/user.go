package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin    = "admin"
	RolePromoter = "promoter"
	RolePDV      = "pdv"
)

// Níveis de promotora. Ausente no cadastro equivale a JUNIOR.
const (
	TierJunior      = "JUNIOR"
	TierSenior      = "SENIOR"
	TierCoordinator = "COORDINATOR"
)

// User representa um usuário do sistema: admin do depósito, promotora de
// campo ou operador de PDV. Promotoras carregam nível e, para a relação de
// override de coordenação, um superior opcional (árvore de profundidade 2,
// só pai→filhos).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca em claro depois de persistir
	Name         string
	Role         string // admin, promoter, pdv
	Tier         string // JUNIOR, SENIOR, COORDINATOR (só promotoras)
	SuperiorID   string // coordenadora responsável (opcional, só promotoras)
	PromoterID   string // promotora que atende o ponto (só PDVs)
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveTier devolve o nível da promotora, tratando cadastro sem nível
// como JUNIOR.
func (u *User) EffectiveTier() string {
	if u.Tier == "" {
		return TierJunior
	}
	return u.Tier
}
