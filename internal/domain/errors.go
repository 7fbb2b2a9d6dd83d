package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrTenantRequired = errors.New("el usuario no tiene un restaurante asociado")
)

// Errores del ciclo de facturación y de la pasarela.
var (
	ErrAuthorizationDenied      = errors.New("el rol no tiene permiso para esta acción")
	ErrInvalidTransition        = errors.New("transición de suscripción no permitida")
	ErrSessionNotFound          = errors.New("sesión de pago no encontrada")
	ErrSessionAlreadyTerminal   = errors.New("la sesión de pago ya fue resuelta")
	ErrSessionOutcomeConflict   = errors.New("la sesión de pago ya fue resuelta con otro resultado")
	ErrSessionExpired           = errors.New("la sesión de pago expiró")
	ErrGatewayUnavailable       = errors.New("pasarela de pago no disponible")
	ErrManualActivationDisabled = errors.New("la activación manual no está habilitada")
	ErrInvalidSignature         = errors.New("firma de webhook inválida")
)

// ErrUntenantedPreview vista previa solicitada sin restaurante resoluble.
var ErrUntenantedPreview = errors.New("no se puede entrar en vista previa sin restaurante asociado")
