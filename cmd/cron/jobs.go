package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

// jobTimeout tope de cada ejecución; la siguiente pasada retoma lo que quede.
const jobTimeout = 5 * time.Minute

type trialChecker interface {
	RunTrialChecks(ctx context.Context) (int, error)
}

type sessionExpirer interface {
	ExpireStaleSessions(ctx context.Context) (int, error)
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// newScheduler cron con recuperación de panics y sin solapar ejecuciones del mismo job.
func newScheduler(log zerolog.Logger) *cron.Cron {
	cl := cronLogger{log: log}
	return cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// registerJobs agenda el vencimiento de pruebas gratuitas y la expiración de sesiones de pago abandonadas.
func registerJobs(c *cron.Cron, cfg config.CronConfig, trials trialChecker, sessions sessionExpirer, log zerolog.Logger) error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) (int, error)
	}{
		{"trial_checks", cfg.TrialSpec, trials.RunTrialChecks},
		{"expire_sessions", cfg.SessionSpec, sessions.ExpireStaleSessions},
	}
	for _, j := range jobs {
		j := j
		if _, err := c.AddFunc(j.spec, func() { runJob(j.name, j.run, log) }); err != nil {
			return fmt.Errorf("agendar %s (%q): %w", j.name, j.spec, err)
		}
		log.Info().Str("job", j.name).Str("spec", j.spec).Msg("job agendado")
	}
	return nil
}

func runJob(name string, run func(ctx context.Context) (int, error), log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := run(ctx)
	if err != nil {
		log.Error().Err(err).Str("job", name).Int("processed", n).Msg("job con errores")
		return
	}
	log.Info().
		Str("job", name).
		Int("processed", n).
		Dur("elapsed", time.Since(start)).
		Msg("job finalizado")
}
