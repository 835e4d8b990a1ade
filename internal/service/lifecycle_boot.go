package service

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
)

const (
	bootRetryBase       = 500 * time.Millisecond
	defaultBootRetryMax = time.Minute
)

// LifecycleBoot runs [LifecycleManager.Start] in the background until it
// succeeds, backing off exponentially up to a cap between attempts. The proxy
// passes requests through to the network while it is retrying.
type LifecycleBoot struct {
	lifecycle LifecycleManager
	backoff   func() retry.Backoff

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewLifecycleBoot creates a boot worker. A retryMax of zero or less defaults
// to one minute.
func NewLifecycleBoot(lifecycle LifecycleManager, retryMax time.Duration, logger *logger.Logger) *LifecycleBoot {
	if retryMax <= 0 {
		retryMax = defaultBootRetryMax
	}

	return &LifecycleBoot{
		lifecycle: lifecycle,
		backoff: func() retry.Backoff {
			return retry.WithCappedDuration(retryMax, retry.NewExponential(bootRetryBase))
		},
		logger: logger,
	}
}

func (b *LifecycleBoot) Start(ctx context.Context) {
	b.Stop()

	b.mu.Lock()
	bootCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()

		attempt := 0
		err := retry.Do(bootCtx, b.backoff(), func(ctx context.Context) error {
			attempt++
			if err := b.lifecycle.Start(ctx); err != nil {
				b.logger.Warn().Err(err).
					Str("func", "LifecycleBoot.Start").
					Int("attempt", attempt).
					Msg("cache generation not ready, retrying")
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			b.logger.Info().Err(err).Str("func", "LifecycleBoot.Start").Msg("boot stopped before the cache generation became active")
			return
		}

		status := b.lifecycle.Status()
		b.logger.Info().
			Str("func", "LifecycleBoot.Start").
			Str("generation", status.Active).
			Int("attempts", attempt).
			Msg("cache generation active")
	}()
}

func (b *LifecycleBoot) Stop() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
}
