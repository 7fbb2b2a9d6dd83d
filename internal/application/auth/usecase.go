package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
	"github.com/jhoicas/restaurant-admin-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de administradores e identidad resuelta.
// Los admins se dan de alta fuera de esta API; aquí solo se autentican.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me identidad, restaurante y acciones permitidas del admin.
func (uc *AuthUseCase) Me(tc *tenant.Context) (*dto.MeResponse, error) {
	if tc == nil || tc.User == nil {
		return nil, domain.ErrUnauthorized
	}
	resp := &dto.MeResponse{User: *toUserResponse(tc.User)}
	if tc.HasTenant() {
		resp.Tenant = &dto.TenantResponse{ID: tc.Tenant.ID, Name: tc.Tenant.Name}
	}
	allowed := tc.Allowed()
	resp.AllowedActions = make([]string, 0, len(allowed))
	for _, a := range allowed {
		resp.AllowedActions = append(resp.AllowedActions, string(a))
	}
	return resp, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		TenantID:     u.TenantID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsSuperAdmin: u.IsSuperAdmin,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
