package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

const defaultSyncInterval = 5 * time.Minute

var (
	errSyncJobStopped = errors.New("sync job is not running")
	errUnknownSyncTag = errors.New("unknown sync tag")
)

type syncJob struct {
	runner   SyncRunner
	interval time.Duration
	trigger  chan struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that calls runner.Run on every registration and on
// a ticker. If interval is zero or negative it defaults to 5 minutes. The job
// is idle until Start is called.
func NewSyncJob(runner SyncRunner, interval time.Duration, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	return &syncJob{
		runner:   runner,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Register implements DeferredSync. A registration wakes the job once;
// registrations made while a wake-up is already pending collapse into it.
func (j *syncJob) Register(ctx context.Context, tag string) models.RegistrationResult {
	if tag != models.SyncTag {
		return models.RegistrationResult{Tag: tag, Err: fmt.Errorf("%w: %q", errUnknownSyncTag, tag)}
	}

	j.mu.Lock()
	running := j.running
	j.mu.Unlock()
	if !running {
		return models.RegistrationResult{Tag: tag, Err: errSyncJobStopped}
	}

	select {
	case j.trigger <- struct{}{}:
	default:
	}

	return models.RegistrationResult{Tag: tag}
}

// Start stops any previously running job, then launches a background
// goroutine that drains the outbox on every trigger and every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.running = true
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-j.trigger:
				j.run(jobCtx, "registration")
			case <-t.C:
				j.run(jobCtx, "interval")
			}
		}
	}()
}

func (j *syncJob) run(ctx context.Context, reason string) {
	report, err := j.runner.Run(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "syncJob.run").Str("reason", reason).Msg("sync run failed")
		return
	}
	if report.Attempted == 0 {
		return
	}

	j.logger.Info().
		Str("func", "syncJob.run").
		Str("reason", reason).
		Int("attempted", report.Attempted).
		Int("delivered", report.Delivered).
		Int("retained", report.Retained).
		Msg("outbox drained")
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.running = false
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
