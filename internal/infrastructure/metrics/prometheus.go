// Package metrics contadores Prometheus de facturación, vista previa y HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
)

var (
	_ billing.Metrics = (*Metrics)(nil)
	_ preview.Metrics = (*PreviewMetrics)(nil)
)

const namespace = "restaurant_admin"

// Metrics agrupa todos los colectores registrados.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PaymentSessionsTotal     *prometheus.CounterVec
	CallbacksTotal           *prometheus.CounterVec
	TransitionsTotal         *prometheus.CounterVec
	TransitionsRejected      *prometheus.CounterVec
	SessionsExpiredTotal     prometheus.Counter
	PreviewEnteredTotal      prometheus.Counter
	PreviewExitedTotal       prometheus.Counter
	PreviewOrdersTaggedTotal prometheus.Counter
}

// New crea y registra los colectores en registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de solicitudes HTTP",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duración de las solicitudes HTTP en segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		PaymentSessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_sessions_total",
				Help:      "Sesiones de pago creadas, por modo (gateway o manual)",
			},
			[]string{"mode"},
		),
		CallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_callbacks_total",
				Help:      "Callbacks de la pasarela conciliados",
			},
			[]string{"outcome", "replayed"},
		),
		TransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscription_transitions_total",
				Help:      "Transiciones de suscripción aplicadas",
			},
			[]string{"event", "from", "to"},
		),
		TransitionsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscription_transitions_rejected_total",
				Help:      "Eventos rechazados por el ledger",
			},
			[]string{"event", "from"},
		),
		SessionsExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_sessions_expired_total",
			Help:      "Sesiones pendientes cerradas por vencimiento",
		}),
		PreviewEnteredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_entered_total",
			Help:      "Entradas a vista previa",
		}),
		PreviewExitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_exited_total",
			Help:      "Salidas de vista previa",
		}),
		PreviewOrdersTaggedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_orders_tagged_total",
			Help:      "Pedidos marcados como prueba",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PaymentSessionsTotal,
		m.CallbacksTotal,
		m.TransitionsTotal,
		m.TransitionsRejected,
		m.SessionsExpiredTotal,
		m.PreviewEnteredTotal,
		m.PreviewExitedTotal,
		m.PreviewOrdersTaggedTotal,
	)
	return m
}

// ObserveHTTP registra una solicitud terminada. route es el patrón, no la ruta concreta.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) SessionCreated(gatewayConfigured bool) {
	mode := "manual"
	if gatewayConfigured {
		mode = "gateway"
	}
	m.PaymentSessionsTotal.WithLabelValues(mode).Inc()
}

func (m *Metrics) CallbackReconciled(outcome string, replayed bool) {
	m.CallbacksTotal.WithLabelValues(outcome, strconv.FormatBool(replayed)).Inc()
}

func (m *Metrics) Transition(event, from, to string) {
	m.TransitionsTotal.WithLabelValues(event, from, to).Inc()
}

func (m *Metrics) TransitionRejected(event, from string) {
	m.TransitionsRejected.WithLabelValues(event, from).Inc()
}

func (m *Metrics) SessionsExpired(n int) {
	if n > 0 {
		m.SessionsExpiredTotal.Add(float64(n))
	}
}

// Preview vista de los contadores de vista previa que implementa preview.Metrics.
func (m *Metrics) Preview() *PreviewMetrics { return &PreviewMetrics{m: m} }

// PreviewMetrics adapta Metrics a preview.Metrics.
type PreviewMetrics struct {
	m *Metrics
}

func (p *PreviewMetrics) Entered()     { p.m.PreviewEnteredTotal.Inc() }
func (p *PreviewMetrics) Exited()      { p.m.PreviewExitedTotal.Inc() }
func (p *PreviewMetrics) OrderTagged() { p.m.PreviewOrdersTaggedTotal.Inc() }
