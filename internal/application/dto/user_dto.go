package dto

import "time"

// UserResponse salida de un administrador (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TenantResponse restaurante del admin.
type TenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MeResponse identidad resuelta y acciones permitidas; el panel no deriva permisos por su cuenta.
type MeResponse struct {
	User           UserResponse    `json:"user"`
	Tenant         *TenantResponse `json:"tenant"`
	AllowedActions []string        `json:"allowed_actions"`
}

// AuthzCheckResponse respuesta de /api/authz/check.
type AuthzCheckResponse struct {
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
}
