package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorTable orden de evaluación: los errores más específicos primero.
var errorTable = []errorMapping{
	{domain.ErrAuthorizationDenied, fiber.StatusForbidden, "AUTHORIZATION_DENIED", "el rol no tiene permiso para esta acción"},
	{domain.ErrTenantRequired, fiber.StatusForbidden, "TENANT_REQUIRED", "el usuario no tiene un restaurante asociado"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "la suscripción no admite esta operación en su estado actual"},
	{domain.ErrSessionNotFound, fiber.StatusNotFound, "SESSION_NOT_FOUND", "sesión de pago no encontrada"},
	{domain.ErrSessionOutcomeConflict, fiber.StatusConflict, "SESSION_CONFLICT", "la sesión de pago ya fue resuelta con otro resultado"},
	{domain.ErrSessionAlreadyTerminal, fiber.StatusConflict, "SESSION_CONFLICT", "la sesión de pago ya fue resuelta"},
	{domain.ErrSessionExpired, fiber.StatusConflict, "SESSION_EXPIRED", "la sesión de pago expiró, inicie un pago nuevo"},
	{domain.ErrGatewayUnavailable, fiber.StatusBadGateway, "GATEWAY_UNAVAILABLE", "la pasarela de pago no está disponible"},
	{domain.ErrManualActivationDisabled, fiber.StatusConflict, "MANUAL_ACTIVATION_DISABLED", "la activación manual no está habilitada"},
	{domain.ErrInvalidSignature, fiber.StatusUnauthorized, "INVALID_SIGNATURE", "firma inválida"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "recurso duplicado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el recurso cambió, reintente"},
}

// respondError traduce un error de dominio a dto.ErrorResponse con código estable.
// Lo que no está en la tabla es INTERNAL y no expone el detalle al cliente.
func respondError(c *fiber.Ctx, err error) error {
	if preview.IsUntenanted(err) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.RemediationErrorResponse{
			Code:        "UNTENANTED_PREVIEW",
			Message:     "asocie un restaurante a su cuenta para usar la vista previa",
			Remediation: preview.RemediationPath,
		})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no mapeado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// badBody respuesta para cuerpos que no se pueden decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberErrorCode(fe.Code), Message: fe.Message})
	}
	return respondError(c, err)
}

func fiberErrorCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "HTTP_ERROR"
	}
}
