package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role,omitempty"`        // admin | promoter | pdv
	Tier       string `json:"tier,omitempty"`        // só promotoras
	SuperiorID string `json:"superior_id,omitempty"` // só promotoras
	PromoterID string `json:"promoter_id,omitempty"` // só PDVs
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuário nas respostas (nunca inclui o hash de senha).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Tier       string    `json:"tier,omitempty"`
	SuperiorID string    `json:"superior_id,omitempty"`
	PromoterID string    `json:"promoter_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
