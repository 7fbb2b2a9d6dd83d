package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/analytics"
	"github.com/jhoicas/restaurant-admin-api/internal/application/auth"
	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	Resolver         *tenant.Resolver
	SubscriptionUC   *billing.SubscriptionUseCase
	PaymentSessionUC *billing.PaymentSessionUseCase
	ReceiptUC        *billing.ReceiptUseCase
	WebhookUC        *billing.WebhookUseCase
	PreviewGuard     *preview.Guard
	OrderCreator     ordering.Creator // ordering.Service decorado con preview.OrderCreator
	OrderService     *ordering.Service
	OrderMetricsUC   *analytics.OrderMetricsUseCase
	TenantRepo       repository.TenantRepository
	OTP              otpIssuer
	OTPSender        otpSender
	CallbackLimiter  rateLimiter // nil deshabilita el límite
	FrontendURL      string
	JWTSecret        string
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Retornos de la pasarela y webhook (públicos)
	gatewayHandler := NewGatewayHandler(deps.PaymentSessionUC, deps.WebhookUC, deps.FrontendURL, deps.Log)
	gateway := api.Group("/billing/gateway")
	var limit fiber.Handler = func(c *fiber.Ctx) error { return c.Next() }
	if deps.CallbackLimiter != nil {
		limit = RateLimitByIP(deps.CallbackLimiter, deps.Log)
	}
	gateway.Get("/success", limit, gatewayHandler.Success)
	gateway.Get("/error", limit, gatewayHandler.Error)
	gateway.Post("/webhook", gatewayHandler.Webhook)

	// Pedidos de clientes (públicos; la vista previa exige además el bearer del admin)
	orderHandler := NewOrderHandler(deps.OrderCreator, deps.OrderService, deps.TenantRepo, deps.OTP, deps.OTPSender)
	restaurants := api.Group("/restaurants/:tenantId")
	restaurants.Post("/otp", orderHandler.RequestOTP)
	restaurants.Post("/orders", PreviewScope(deps.JWTSecret, deps.Resolver, deps.PreviewGuard), orderHandler.PlaceOrder)
	restaurants.Get("/orders/:id", orderHandler.GetOrder)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret, deps.Resolver))
	protected.Get("/me", authHandler.Me)
	protected.Get("/authz/check", authHandler.AuthzCheck)

	// Facturación
	billingHandler := NewBillingHandler(deps.SubscriptionUC, deps.PaymentSessionUC, deps.ReceiptUC)
	bill := protected.Group("/billing")
	bill.Get("/snapshot", RequireAction(authz.BillingView), billingHandler.Snapshot)
	bill.Post("/payment-session", RequireAction(authz.BillingPay), billingHandler.CreatePaymentSession)
	bill.Post("/activate-manually", RequireAction(authz.BillingActivateManual), billingHandler.ActivateManually)
	bill.Post("/cancel", RequireAction(authz.BillingCancel), billingHandler.Cancel)
	bill.Post("/reactivate", RequireAction(authz.BillingReactivate), billingHandler.Reactivate)
	bill.Get("/payments/:id/receipt", RequireAction(authz.BillingView), billingHandler.Receipt)

	// Vista previa
	previewHandler := NewPreviewHandler(deps.PreviewGuard)
	protected.Post("/preview/enter", RequireAction(authz.PreviewEnter), previewHandler.Enter)
	protected.Post("/preview/exit", previewHandler.Exit)

	// Métricas de pedidos
	analyticsHandler := NewAnalyticsHandler(deps.OrderMetricsUC)
	protected.Get("/metrics/orders", RequireAction(authz.MetricsView), analyticsHandler.GetOrderMetrics)
}
