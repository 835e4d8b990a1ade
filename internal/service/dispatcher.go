package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/internal/validators"
	"github.com/MKhiriev/go-todo-offline/models"
)

type dispatcher struct {
	network  adapter.Network
	cache    store.CacheRepository
	outbox   OutboxService
	deferred DeferredSync
	bodies   validators.Validator

	taskPath        string
	offlinePage     string
	placeholderIcon string

	generation atomic.Pointer[string]
	now        func() time.Time

	logger *logger.Logger
}

// NewDispatcher creates a dispatcher that passes every request straight to
// network until Claim is called.
func NewDispatcher(
	network adapter.Network,
	cache store.CacheRepository,
	outbox OutboxService,
	deferred DeferredSync,
	routes config.Routes,
	cacheCfg config.Cache,
	logger *logger.Logger,
) Dispatcher {
	return &dispatcher{
		network:         network,
		cache:           cache,
		outbox:          outbox,
		deferred:        deferred,
		bodies:          validators.NewRequestValidator(),
		taskPath:        routes.TaskPath,
		offlinePage:     cacheCfg.OfflinePage,
		placeholderIcon: cacheCfg.PlaceholderIcon,
		now:             time.Now,
		logger:          logger,
	}
}

func (d *dispatcher) Claim(generation string) {
	d.generation.Store(&generation)
	d.logger.Info().Str("generation", generation).Msg("dispatcher claimed")
}

func (d *dispatcher) Controlling() (string, bool) {
	g := d.generation.Load()
	if g == nil {
		return "", false
	}
	return *g, true
}

func (d *dispatcher) Dispatch(ctx context.Context, req models.Request) (models.Response, error) {
	// the generation is read once so a request never mixes two generations
	generation, ok := d.Controlling()
	if !ok {
		return d.passthrough(ctx, req)
	}

	route := Classify(req, d.taskPath)
	logger.FromContext(ctx).Debug().
		Str("func", "dispatcher.Dispatch").
		Str("route", route.String()).
		Str("method", req.Method).
		Str("url", req.URL).
		Msg("dispatching request")

	switch route {
	case RouteNavigation:
		return d.navigation(ctx, generation, req), nil
	case RouteMutation:
		return d.mutation(ctx, req), nil
	case RouteRead:
		return d.read(ctx, generation, req), nil
	case RouteStatic:
		return d.static(ctx, generation, req), nil
	default:
		return d.networkOrCache(ctx, generation, req)
	}
}

func (d *dispatcher) passthrough(ctx context.Context, req models.Request) (models.Response, error) {
	resp, err := d.network.Fetch(ctx, req)
	if err != nil {
		return models.Response{}, err
	}
	return resp.From(models.SourceNetwork), nil
}

// navigation is network-first; it falls back to the cached document, then
// the offline page, then an empty 503.
func (d *dispatcher) navigation(ctx context.Context, generation string, req models.Request) models.Response {
	resp, err := d.network.Fetch(ctx, req)
	if err == nil {
		d.save(ctx, generation, req, resp)
		return resp.From(models.SourceNetwork)
	}

	if cached, ok := d.match(ctx, generation, req.Method, req.URL); ok {
		return cached.From(models.SourceCache)
	}
	if page, ok := d.match(ctx, generation, http.MethodGet, d.offlinePage); ok {
		return page.From(models.SourceFallback)
	}

	return synthetic(http.StatusServiceUnavailable, nil)
}

// mutation is network-first with no cache write. When the network fails the
// body is captured in the outbox and a deferred sync is requested.
func (d *dispatcher) mutation(ctx context.Context, req models.Request) models.Response {
	log := logger.FromContext(ctx)

	if req.BodyErr == nil {
		resp, err := d.network.Fetch(ctx, req)
		if err == nil {
			return resp.From(models.SourceNetwork)
		}
		log.Info().Err(err).Str("func", "dispatcher.mutation").Msg("upstream unreachable, queueing mutation")
	}

	if err := d.bodies.Validate(ctx, req, validators.FieldJSONBody); err != nil {
		log.Warn().Err(err).
			Str("func", "dispatcher.mutation").
			Str("url", req.URL).
			Msg("mutation body unreadable, not queued")
		return syntheticJSON(http.StatusInternalServerError, models.MutationAck{Offline: true})
	}

	mutation := models.QueuedMutation{
		TargetURL:  req.URL,
		Method:     req.Method,
		Body:       append(json.RawMessage(nil), req.Body...),
		EnqueuedAt: d.now(),
	}
	// fail-open: the mutation is acknowledged even if storage drops it
	_, _ = d.outbox.Enqueue(ctx, mutation)

	if res := d.deferred.Register(ctx, models.SyncTag); !res.Registered() {
		log.Warn().Err(res.Err).
			Str("func", "dispatcher.mutation").
			Str("tag", res.Tag).
			Msg("deferred sync registration failed")
	}

	return syntheticJSON(http.StatusAccepted, models.MutationAck{Offline: true, Queued: true})
}

// read is network-first; offline it serves the last snapshot or an empty list.
func (d *dispatcher) read(ctx context.Context, generation string, req models.Request) models.Response {
	resp, err := d.network.Fetch(ctx, req)
	if err == nil {
		d.save(ctx, generation, req, resp)
		return resp.From(models.SourceNetwork)
	}

	if cached, ok := d.match(ctx, generation, req.Method, req.URL); ok {
		return cached.From(models.SourceCache)
	}

	return syntheticJSON(http.StatusOK, models.OfflineTodos{Todos: []json.RawMessage{}, Offline: true})
}

// static is cache-first: a stored snapshot is returned without touching the
// network until its generation is superseded.
func (d *dispatcher) static(ctx context.Context, generation string, req models.Request) models.Response {
	if cached, ok := d.match(ctx, generation, req.Method, req.URL); ok {
		return cached.From(models.SourceCache)
	}

	resp, err := d.network.Fetch(ctx, req)
	if err == nil {
		d.save(ctx, generation, req, resp)
		return resp.From(models.SourceNetwork)
	}

	if req.Destination == models.DestinationImage {
		if icon, ok := d.match(ctx, generation, http.MethodGet, d.placeholderIcon); ok {
			return icon.From(models.SourceFallback)
		}
	}

	return synthetic(http.StatusNotFound, nil)
}

// networkOrCache tries the network, then any cached match, then gives up.
func (d *dispatcher) networkOrCache(ctx context.Context, generation string, req models.Request) (models.Response, error) {
	resp, err := d.network.Fetch(ctx, req)
	if err == nil {
		return resp.From(models.SourceNetwork), nil
	}

	if cached, ok := d.match(ctx, generation, req.Method, req.URL); ok {
		return cached.From(models.SourceCache), nil
	}

	return models.Response{}, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
}

// match looks up a snapshot. Storage errors degrade to a miss.
func (d *dispatcher) match(ctx context.Context, generation, method, url string) (models.Response, bool) {
	if url == "" {
		return models.Response{}, false
	}

	resp, err := d.cache.Match(ctx, generation, store.RequestKey(method, url))
	if err != nil {
		if !store.IsCacheMiss(err) {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "dispatcher.match").
				Str("url", url).
				Msg("cache lookup failed, treating as miss")
		}
		return models.Response{}, false
	}

	return resp, true
}

// save snapshots resp for req. Only GET responses are stored, and partial
// content never is. Failures are logged and otherwise ignored.
func (d *dispatcher) save(ctx context.Context, generation string, req models.Request, resp models.Response) {
	if req.Method != http.MethodGet || resp.Status == http.StatusPartialContent {
		return
	}

	entry := models.CacheEntry{
		Key:      store.RequestKey(req.Method, req.URL),
		Method:   req.Method,
		URL:      req.URL,
		Response: models.Response{Status: resp.Status, Header: resp.Header, Body: resp.Body},
		StoredAt: d.now(),
	}
	if err := d.cache.Put(ctx, generation, entry); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "dispatcher.save").
			Str("url", req.URL).
			Msg("failed to store snapshot")
	}
}

func synthetic(status int, body []byte) models.Response {
	return models.Response{
		Status: status,
		Header: make(http.Header),
		Body:   body,
		Source: models.SourceSynthetic,
	}
}

func syntheticJSON(status int, v any) models.Response {
	body, _ := json.Marshal(v)

	resp := synthetic(status, body)
	resp.Header.Set("Content-Type", "application/json")
	return resp
}
