package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
	"github.com/aurora-folheados/aurora-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro e login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser cria um usuário: valida papel/nível, faz hash da senha com
// bcrypt e persiste. ErrEmailAlreadyExists se o e-mail já está em uso.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if in.Tier != "" && !validTier(in.Tier) {
		return nil, domain.ErrInvalidInput
	}

	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	// Relações de rede: superior só faz sentido para promotora, promotora
	// responsável só para PDV.
	if in.SuperiorID != "" && in.Role != entity.RolePromoter {
		return nil, domain.ErrInvalidInput
	}
	if in.PromoterID != "" && in.Role != entity.RolePDV {
		return nil, domain.ErrInvalidInput
	}
	if in.PromoterID != "" {
		promoter, err := uc.userRepo.GetByID(in.PromoterID)
		if err != nil {
			return nil, err
		}
		if promoter == nil || promoter.Role != entity.RolePromoter {
			return nil, domain.ErrInvalidInput
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Tier:         in.Tier,
		SuperiorID:   in.SuperiorID,
		PromoterID:   in.PromoterID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica e-mail/senha, gera o JWT e devolve token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Profile devolve os dados do usuário autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// AssignedPDVs devolve os PDVs atendidos por uma promotora (telas de
// auditoria e reposição da maleta).
func (uc *AuthUseCase) AssignedPDVs(promoterID string) ([]*dto.UserResponse, error) {
	promoter, err := uc.userRepo.GetByID(promoterID)
	if err != nil {
		return nil, err
	}
	if promoter == nil || promoter.Role != entity.RolePromoter {
		return nil, domain.ErrUserNotFound
	}
	pdvs, err := uc.userRepo.ListAssignedPDVs(promoterID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(pdvs))
	for _, p := range pdvs {
		out = append(out, toUserResponse(p))
	}
	return out, nil
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RolePromoter, entity.RolePDV:
		return true
	}
	return false
}

func validTier(tier string) bool {
	switch tier {
	case entity.TierJunior, entity.TierSenior, entity.TierCoordinator:
		return true
	}
	return false
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Tier:       u.Tier,
		SuperiorID: u.SuperiorID,
		PromoterID: u.PromoterID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
