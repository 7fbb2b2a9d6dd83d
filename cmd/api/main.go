package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	_ "github.com/jhoicas/restaurant-admin-api/docs"
	"github.com/jhoicas/restaurant-admin-api/internal/application/analytics"
	"github.com/jhoicas/restaurant-admin-api/internal/application/auth"
	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/gateway"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/restaurant-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/restaurant-admin-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/restaurant-admin-api/internal/interfaces/http"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
	"github.com/jhoicas/restaurant-admin-api/pkg/logger"
)

// @title                       Restaurant Admin API
// @version                     1.0
// @description                 API del panel de administración de restaurantes: facturación, vista previa y pedidos.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("gateway_configured", cfg.Gateway.Configured()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := postgres.NewPaymentSessionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := authz.Default()
	resolver := tenant.NewResolver(userRepo, tenantRepo, policy, log.Component("tenant"))

	billingLog := log.Component("billing")
	ldg := ledger.New(billing.PricingFromConfig(cfg.Billing))
	opts := billing.OptionsFromConfig(cfg)

	// Sin pasarela el caso de uso recibe una interfaz nil y ofrece activación manual.
	var gatewayClient billing.GatewayClient
	if c := gateway.NewClient(cfg.Gateway, log.Component("gateway")); c != nil {
		gatewayClient = c
	}

	subscriptionUC := billing.NewSubscriptionUseCase(txRunner, subRepo, paymentRepo, ldg, opts, m, billingLog)
	paymentSessionUC := billing.NewPaymentSessionUseCase(txRunner, subRepo, sessionRepo, tenantRepo, gatewayClient, ldg, opts, m, billingLog)
	webhookUC := billing.NewWebhookUseCase(txRunner, cfg.Gateway.WebhookSecret, ldg, m, billingLog)

	// PDF: comprobante de pago de la suscripción
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(language.Spanish)
	receiptUC := billing.NewReceiptUseCase(paymentRepo, subRepo, pdfGenerator)

	otpStore := infraredis.NewOTPStore(rdb, 5*time.Minute)
	notifier := notify.NewLogNotifier(log.Component("notify"))
	orderSvc := ordering.NewService(orderRepo, tenantRepo, otpStore, notifier, log.Component("ordering"))

	previewLog := log.Component("preview")
	previewGuard := preview.NewGuard(
		infraredis.NewPreviewStore(rdb),
		cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.Preview.TTLMinutes)*time.Minute,
		m.Preview(), previewLog,
	)
	orderCreator := preview.NewOrderCreator(orderSvc, m.Preview(), previewLog)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orderMetricsUC := analytics.NewOrderMetricsUseCase(analyticsRepo)

	callbackLimiter := infraredis.NewRateLimiter(rdb, "ratelimit:callback", cfg.RateLimit.CallbacksPerMinute, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.HTTPMetrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restaurant Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		Resolver:         resolver,
		SubscriptionUC:   subscriptionUC,
		PaymentSessionUC: paymentSessionUC,
		ReceiptUC:        receiptUC,
		WebhookUC:        webhookUC,
		PreviewGuard:     previewGuard,
		OrderCreator:     orderCreator,
		OrderService:     orderSvc,
		OrderMetricsUC:   orderMetricsUC,
		TenantRepo:       tenantRepo,
		OTP:              otpStore,
		OTPSender:        notifier,
		CallbackLimiter:  callbackLimiter,
		FrontendURL:      cfg.Gateway.FrontendURL,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
