// Package notify avisos al cliente final. Sin proveedor de SMS configurado los avisos
// quedan en el log estructurado.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

var _ ordering.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe cada aviso como evento de log.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// OrderPlaced aviso de pedido recibido.
func (n *LogNotifier) OrderPlaced(_ context.Context, o *entity.Order) error {
	n.log.Info().
		Str("tenant_id", o.TenantID).
		Str("order_id", o.ID).
		Str("phone", MaskPhone(o.CustomerPhone)).
		Str("total", o.Total.StringFixed(2)).
		Msg("aviso de pedido recibido")
	return nil
}

// OTPIssued aviso con el código de verificación. El código solo se escribe a nivel debug.
func (n *LogNotifier) OTPIssued(_ context.Context, tenantID, phone, code string) error {
	n.log.Info().
		Str("tenant_id", tenantID).
		Str("phone", MaskPhone(phone)).
		Msg("código de verificación enviado")
	n.log.Debug().Str("tenant_id", tenantID).Str("code", code).Msg("otp")
	return nil
}

// MaskPhone deja visibles los últimos 4 dígitos.
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return phone
	}
	for i := 0; i < len(r)-4; i++ {
		if r[i] != '+' {
			r[i] = '*'
		}
	}
	return string(r)
}
