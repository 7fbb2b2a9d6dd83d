package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/gateway"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
	"github.com/jhoicas/restaurant-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name + "-cron",
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando tareas programadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New(prometheus.NewRegistry())
	billingLog := log.Component("billing")
	ldg := ledger.New(billing.PricingFromConfig(cfg.Billing))
	opts := billing.OptionsFromConfig(cfg)
	txRunner := postgres.NewTxRunner(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)

	// Mismo caso de uso que la API; la expiración no llama a la pasarela.
	var gatewayClient billing.GatewayClient
	if c := gateway.NewClient(cfg.Gateway, log.Component("gateway")); c != nil {
		gatewayClient = c
	}

	subscriptionUC := billing.NewSubscriptionUseCase(txRunner, subRepo, postgres.NewPaymentRepository(pool), ldg, opts, m, billingLog)
	paymentSessionUC := billing.NewPaymentSessionUseCase(
		txRunner, subRepo, postgres.NewPaymentSessionRepository(pool), postgres.NewTenantRepository(pool),
		gatewayClient, ldg, opts, m, billingLog,
	)

	cronLog := log.Component("cron")
	scheduler := newScheduler(cronLog)
	if err := registerJobs(scheduler, cfg.Cron, subscriptionUC, paymentSessionUC, cronLog); err != nil {
		log.Fatal().Err(err).Msg("configuración de cron")
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, esperando jobs en curso...")
	<-scheduler.Stop().Done()
	log.Info().Msg("tareas programadas detenidas")
}
