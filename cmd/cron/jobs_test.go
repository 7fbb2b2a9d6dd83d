package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

type countingJob struct {
	calls int
	n     int
	err   error
}

func (j *countingJob) RunTrialChecks(ctx context.Context) (int, error) {
	j.calls++
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return 0, errors.New("sin deadline")
	}
	return j.n, j.err
}

func (j *countingJob) ExpireStaleSessions(ctx context.Context) (int, error) {
	return j.RunTrialChecks(ctx)
}

func TestRegisterJobs_AgendaAmbos(t *testing.T) {
	c := newScheduler(zerolog.Nop())
	trials, sessions := &countingJob{}, &countingJob{}

	err := registerJobs(c, config.CronConfig{TrialSpec: "@hourly", SessionSpec: "@every 5m"}, trials, sessions, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, c.Entries(), 2)

	for _, e := range c.Entries() {
		e.Job.Run()
	}
	assert.Equal(t, 1, trials.calls)
	assert.Equal(t, 1, sessions.calls)
}

func TestRegisterJobs_SpecInvalido(t *testing.T) {
	c := newScheduler(zerolog.Nop())

	err := registerJobs(c, config.CronConfig{TrialSpec: "cada hora", SessionSpec: "@every 5m"}, &countingJob{}, &countingJob{}, zerolog.Nop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "trial_checks")
}

func TestRunJob_RegistraErrores(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	job := &countingJob{n: 3, err: errors.New("db caída")}

	runJob("trial_checks", job.RunTrialChecks, log)

	assert.Contains(t, buf.String(), `"job":"trial_checks"`)
	assert.Contains(t, buf.String(), "db caída")
	assert.Contains(t, buf.String(), `"processed":3`)
}

func TestRunJob_Exito(t *testing.T) {
	var buf bytes.Buffer
	job := &countingJob{n: 7}

	runJob("expire_sessions", job.ExpireStaleSessions, zerolog.New(&buf))

	assert.Contains(t, buf.String(), "job finalizado")
	assert.Contains(t, buf.String(), `"processed":7`)
}
