package service

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/models"
)

type lifecycleManager struct {
	network    adapter.Network
	cache      store.CacheRepository
	dispatcher Dispatcher

	version  string
	manifest []string
	now      func() time.Time

	// installMu serialises Install, Activate and Start.
	installMu sync.Mutex

	mu         sync.RWMutex
	state      models.LifecycleState
	generation string
	active     string

	logger *logger.Logger
}

// NewLifecycleManager creates a manager for the generation named by
// cfg.Version. It starts in the parsed state with nothing installed.
func NewLifecycleManager(
	network adapter.Network,
	cache store.CacheRepository,
	dispatcher Dispatcher,
	cfg config.Cache,
	logger *logger.Logger,
) LifecycleManager {
	return &lifecycleManager{
		network:    network,
		cache:      cache,
		dispatcher: dispatcher,
		version:    cfg.Version,
		manifest:   slices.Clone(cfg.Manifest),
		now:        time.Now,
		state:      models.StateParsed,
		generation: cfg.Version,
		logger:     logger,
	}
}

func (l *lifecycleManager) setState(generation string, state models.LifecycleState) {
	l.mu.Lock()
	l.generation = generation
	l.state = state
	l.mu.Unlock()

	l.logger.Info().
		Str("func", "lifecycleManager.setState").
		Str("generation", generation).
		Str("state", string(state)).
		Msg("lifecycle transition")
}

func (l *lifecycleManager) Status() models.LifecycleStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return models.LifecycleStatus{State: l.state, Generation: l.generation, Active: l.active}
}

// Install populates generation name next to the active one. The active
// generation itself cannot be reinstalled.
func (l *lifecycleManager) Install(ctx context.Context, name string) error {
	if name == "" {
		return ErrNoGenerationName
	}

	l.installMu.Lock()
	defer l.installMu.Unlock()

	if l.Status().Active == name {
		return fmt.Errorf("%w: %s", ErrGenerationActive, name)
	}
	return l.install(ctx, name)
}

// install fetches the whole manifest and stores it in one transaction. A
// generation that did not exist before a failed install is deleted again.
func (l *lifecycleManager) install(ctx context.Context, name string) error {
	if len(l.manifest) == 0 {
		l.setState(name, models.StateRedundant)
		return fmt.Errorf("%w: %s: %w", ErrInstallFailed, name, ErrEmptyManifest)
	}

	l.setState(name, models.StateInstalling)

	existing, err := l.cache.Generations(ctx)
	if err != nil {
		l.setState(name, models.StateRedundant)
		return fmt.Errorf("%w: %s: list generations: %w", ErrInstallFailed, name, err)
	}

	entries, err := l.fetchManifest(ctx)
	if err == nil {
		err = l.cache.Put(ctx, name, entries...)
	}
	if err != nil {
		if !slices.Contains(existing, name) {
			if delErr := l.cache.DeleteGeneration(ctx, name); delErr != nil {
				l.logger.Warn().Err(delErr).
					Str("func", "lifecycleManager.install").
					Str("generation", name).
					Msg("failed to delete partial generation")
			}
		}
		l.setState(name, models.StateRedundant)
		return fmt.Errorf("%w: %s: %w", ErrInstallFailed, name, err)
	}

	l.setState(name, models.StateWaiting)
	return nil
}

func (l *lifecycleManager) fetchManifest(ctx context.Context) ([]models.CacheEntry, error) {
	entries := make([]models.CacheEntry, len(l.manifest))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range l.manifest {
		g.Go(func() error {
			req := models.Request{Method: http.MethodGet, URL: path, Path: path, SameOrigin: true}

			resp, err := l.network.Fetch(gctx, req)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrManifestEntryFailed, path, err)
			}
			if !resp.IsSuccess() {
				return fmt.Errorf("%w: %s: status %d", ErrManifestEntryFailed, path, resp.Status)
			}

			entries[i] = models.CacheEntry{
				Key:      store.RequestKey(http.MethodGet, path),
				Method:   http.MethodGet,
				URL:      path,
				Response: models.Response{Status: resp.Status, Header: resp.Header, Body: resp.Body},
				StoredAt: l.now(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *lifecycleManager) Activate(ctx context.Context) error {
	l.installMu.Lock()
	defer l.installMu.Unlock()

	return l.activate(ctx)
}

// activate purges every generation but the waiting one, then claims the
// dispatcher for it.
func (l *lifecycleManager) activate(ctx context.Context) error {
	l.mu.RLock()
	state, name, previous := l.state, l.generation, l.active
	l.mu.RUnlock()

	if state != models.StateWaiting {
		return fmt.Errorf("%w: %s is %s", ErrNothingWaiting, name, state)
	}

	names, err := l.cache.Generations(ctx)
	if err != nil {
		return fmt.Errorf("activate %s: list generations: %w", name, err)
	}
	for _, old := range names {
		if old == name {
			continue
		}
		if err = l.cache.DeleteGeneration(ctx, old); err != nil {
			return fmt.Errorf("activate %s: delete generation %s: %w", name, old, err)
		}
		l.logger.Info().Str("func", "lifecycleManager.activate").Str("generation", old).Msg("removed old cache generation")
	}

	l.dispatcher.Claim(name)

	l.mu.Lock()
	l.active = name
	l.mu.Unlock()
	l.setState(name, models.StateActive)

	if previous != "" && previous != name {
		l.logger.Info().
			Str("func", "lifecycleManager.activate").
			Str("generation", previous).
			Str("state", string(models.StateSuperseded)).
			Msg("lifecycle transition")
	}

	return nil
}

// Start brings the configured generation into control. A generation stored
// by an earlier run is resumed without touching the network; otherwise it is
// installed first. Activation follows immediately.
func (l *lifecycleManager) Start(ctx context.Context) error {
	l.installMu.Lock()
	defer l.installMu.Unlock()

	status := l.Status()
	if status.State == models.StateActive && status.Active == l.version {
		return nil
	}

	names, err := l.cache.Generations(ctx)
	if err != nil {
		return fmt.Errorf("start %s: list generations: %w", l.version, err)
	}

	if slices.Contains(names, l.version) {
		l.logger.Info().Str("func", "lifecycleManager.Start").Str("generation", l.version).Msg("resuming stored cache generation")
		l.setState(l.version, models.StateWaiting)
	} else if err = l.install(ctx, l.version); err != nil {
		return err
	}

	return l.activate(ctx)
}
