package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/models"
)

const (
	outboxRetryDelay = 50 * time.Millisecond
	outboxMaxRetries = 3
)

type outboxService struct {
	repo    store.OutboxRepository
	backoff func() retry.Backoff

	logger *logger.Logger
}

// NewOutboxService wraps repo with bounded retries of transient storage
// errors. An enqueue that still fails is dropped: the caller has already
// acknowledged the mutation as queued, so the loss is only logged.
func NewOutboxService(repo store.OutboxRepository, logger *logger.Logger) OutboxService {
	return &outboxService{
		repo: repo,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(outboxMaxRetries, retry.NewConstant(outboxRetryDelay))
		},
		logger: logger,
	}
}

func (o *outboxService) do(ctx context.Context, f func(ctx context.Context) error) error {
	return retry.Do(ctx, o.backoff(), func(ctx context.Context) error {
		err := f(ctx)
		if errors.Is(err, store.ErrTransient) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (o *outboxService) Enqueue(ctx context.Context, mutation models.QueuedMutation) (int64, error) {
	var id int64
	err := o.do(ctx, func(ctx context.Context) error {
		var err error
		id, err = o.repo.Enqueue(ctx, mutation)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).
			Str("func", "outboxService.Enqueue").
			Str("target_url", mutation.TargetURL).
			Msg("outbox storage unavailable, mutation dropped")
		return 0, fmt.Errorf("%w: %w", ErrMutationDropped, err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "outboxService.Enqueue").
		Int64("id", id).
		Msg("mutation queued")
	return id, nil
}

func (o *outboxService) ListAll(ctx context.Context) ([]models.QueuedMutation, error) {
	var items []models.QueuedMutation
	err := o.do(ctx, func(ctx context.Context) error {
		var err error
		items, err = o.repo.ListAll(ctx)
		return err
	})
	return items, err
}

func (o *outboxService) Remove(ctx context.Context, id int64) error {
	return o.do(ctx, func(ctx context.Context) error {
		return o.repo.Remove(ctx, id)
	})
}

func (o *outboxService) Pending(ctx context.Context) (int, error) {
	items, err := o.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
