package service

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

// replayAccepted are the statuses that remove a replayed item from the outbox.
var replayAccepted = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}

type syncRunner struct {
	outbox   OutboxService
	network  adapter.Network
	taskPath string

	group singleflight.Group

	logger *logger.Logger
}

// NewSyncRunner creates a runner replaying outbox items through network.
// Items without a target URL are replayed against taskPath.
func NewSyncRunner(outbox OutboxService, network adapter.Network, taskPath string, logger *logger.Logger) SyncRunner {
	return &syncRunner{
		outbox:   outbox,
		network:  network,
		taskPath: taskPath,
		logger:   logger,
	}
}

// Run replays every queued mutation once, in enqueue order. Accepted items are
// removed; rejected or unreachable items stay queued and the run continues.
// Calls made while a run is in flight share its report. The shared run is
// detached from the caller that started it, so a caller giving up returns
// ctx.Err() while the others still get a complete report.
func (s *syncRunner) Run(ctx context.Context) (models.SyncReport, error) {
	ch := s.group.DoChan("drain", func() (any, error) {
		return s.drain(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return models.SyncReport{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			logger.FromContext(ctx).Debug().Str("func", "syncRunner.Run").Msg("joined in-flight sync run")
		}
		report, _ := res.Val.(models.SyncReport)
		return report, res.Err
	}
}

func (s *syncRunner) drain(ctx context.Context) (models.SyncReport, error) {
	log := logger.FromContext(ctx)

	var report models.SyncReport
	items, err := s.outbox.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("list outbox: %w", err)
	}

	for _, item := range items {
		if err = ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++

		resp, err := s.network.Fetch(ctx, s.replayRequest(item))
		if err != nil {
			log.Warn().Err(err).
				Str("func", "syncRunner.drain").
				Int64("id", item.ID).
				Msg("replay failed, keeping queued mutation")
			report.Retained++
			continue
		}

		if !slices.Contains(replayAccepted, resp.Status) {
			log.Warn().
				Str("func", "syncRunner.drain").
				Int64("id", item.ID).
				Int("status", resp.Status).
				Msg("upstream rejected queued mutation, keeping it")
			report.Retained++
			continue
		}

		if err = s.outbox.Remove(ctx, item.ID); err != nil {
			// delivered but still queued; the next run replays it again
			log.Error().Err(err).
				Str("func", "syncRunner.drain").
				Int64("id", item.ID).
				Msg("failed to remove delivered mutation")
			report.Retained++
			continue
		}

		log.Info().
			Str("func", "syncRunner.drain").
			Int64("id", item.ID).
			Int("status", resp.Status).
			Msg("synced queued mutation")
		report.Delivered++
	}

	return report, nil
}

func (s *syncRunner) replayRequest(item models.QueuedMutation) models.Request {
	target := item.TargetURL
	if target == "" {
		target = s.taskPath
	}

	method := item.Method
	if method == "" {
		method = http.MethodPost
	}

	return models.Request{
		Method: method,
		URL:    target,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   item.Body,
	}
}
