package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
)

// authService lo implementa *auth.AuthUseCase.
type authService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Me(tc *tenant.Context) (*dto.MeResponse, error)
}

// AuthHandler maneja login, identidad y consulta de permisos.
type AuthHandler struct {
	uc authService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc authService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidad del admin y acciones permitidas
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetTenantContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AuthzCheck godoc
// @Summary      Consultar si el rol permite una acción
// @Description  Lo usan las pantallas de kiosco y ensaladas para habilitar controles.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        action  query  string  true  "acción, p. ej. kiosk.create"
// @Success      200  {object}  dto.AuthzCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/authz/check [get]
func (h *AuthHandler) AuthzCheck(c *fiber.Ctx) error {
	action := c.Query("action")
	if action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action es requerido"})
	}
	tc := GetTenantContext(c)
	return c.JSON(dto.AuthzCheckResponse{Action: action, Allowed: tc.Can(authz.Action(action))})
}
