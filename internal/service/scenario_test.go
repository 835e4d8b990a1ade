// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/models"
)

// offlineApp wires the real dispatcher, outbox service, sync runner and
// lifecycle manager over in-memory storage and a switchable network.
type offlineApp struct {
	network    *fakeNetwork
	cache      *memCache
	repo       *memOutbox
	dispatcher Dispatcher
	runner     SyncRunner
	lifecycle  LifecycleManager
}

func newOfflineApp(t *testing.T, version string, cache *memCache, upstream func(models.Request) models.Response) *offlineApp {
	t.Helper()

	app := &offlineApp{
		network: newFakeNetwork(upstream),
		cache:   cache,
		repo:    newMemOutbox(),
	}
	outbox := NewOutboxService(app.repo, logger.Nop())
	app.runner = NewSyncRunner(outbox, app.network, testRoutes.TaskPath, logger.Nop())
	app.dispatcher = NewDispatcher(app.network, cache, outbox, &stubDeferred{}, testRoutes, cacheCfg(version), logger.Nop())
	app.lifecycle = NewLifecycleManager(app.network, cache, app.dispatcher, cacheCfg(version), logger.Nop())

	require.NoError(t, app.lifecycle.Start(context.Background()))
	return app
}

func TestScenario_BuyMilkOfflineThenSync(t *testing.T) {
	ctx := context.Background()
	var created []string
	app := newOfflineApp(t, "todo-pwa-v1", newMemCache(), func(req models.Request) models.Response {
		if req.Method == http.MethodPost {
			created = append(created, string(req.Body))
			return models.Response{Status: http.StatusCreated, Header: http.Header{}}
		}
		return okText("shell")
	})

	app.network.setOffline(true)
	resp, err := app.dispatcher.Dispatch(ctx, postTodo(`{"text":"buy milk"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.JSONEq(t, `{"success":false,"offline":true,"queued":true}`, string(resp.Body))
	assert.Equal(t, 1, app.repo.len())

	app.network.setOffline(false)
	report, err := app.runner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.SyncReport{Attempted: 1, Delivered: 1}, report)
	assert.Equal(t, 0, app.repo.len())
	require.Len(t, created, 1)
	assert.JSONEq(t, `{"text":"buy milk"}`, created[0])
}

func TestScenario_OfflineReadServesPriorSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshot := `{"todos":[{"id":"a1","text":"x"}]}`
	app := newOfflineApp(t, "todo-pwa-v1", newMemCache(), func(req models.Request) models.Response {
		if req.Path == "/api/todos" {
			return models.Response{Status: http.StatusOK, Header: http.Header{"Content-Type": {"application/json"}}, Body: []byte(snapshot)}
		}
		return okText("shell")
	})

	_, err := app.dispatcher.Dispatch(ctx, getRequest("/api/todos"))
	require.NoError(t, err)

	app.network.setOffline(true)
	resp, err := app.dispatcher.Dispatch(ctx, getRequest("/api/todos"))
	require.NoError(t, err)

	assert.Equal(t, models.SourceCache, resp.Source)
	assert.Equal(t, snapshot, string(resp.Body))
}

func TestScenario_OfflineReadWithoutSnapshot(t *testing.T) {
	app := newOfflineApp(t, "todo-pwa-v1", newMemCache(), func(models.Request) models.Response { return okText("shell") })

	app.network.setOffline(true)
	resp, err := app.dispatcher.Dispatch(context.Background(), getRequest("/api/todos"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"todos":[],"offline":true}`, string(resp.Body))
}

func TestScenario_ShellServedOfflineAfterInstall(t *testing.T) {
	app := newOfflineApp(t, "todo-pwa-v1", newMemCache(), func(req models.Request) models.Response {
		return okText("shell " + req.URL)
	})
	calls := app.network.callCount()

	resp, err := app.dispatcher.Dispatch(context.Background(), getRequest("/style.css"))
	require.NoError(t, err)
	assert.Equal(t, models.SourceCache, resp.Source)
	assert.Equal(t, "shell /style.css", string(resp.Body))
	assert.Equal(t, calls, app.network.callCount(), "cache-first must not touch the network")

	app.network.setOffline(true)
	nav, err := app.dispatcher.Dispatch(context.Background(), navigationRequest("/unknown"))
	require.NoError(t, err)
	assert.Equal(t, models.SourceFallback, nav.Source)
	assert.Equal(t, "shell /offline.html", string(nav.Body))
}

func TestScenario_GenerationCutover(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	version := "v1"
	upstream := func(req models.Request) models.Response { return okText(version + " " + req.URL) }

	v1 := newOfflineApp(t, "todo-pwa-v1", cache, upstream)
	_, err := v1.dispatcher.Dispatch(ctx, getRequest("/extra.js"))
	require.NoError(t, err)

	version = "v2"
	v2 := newOfflineApp(t, "todo-pwa-v2", cache, upstream)

	names, _ := cache.Generations(ctx)
	assert.Equal(t, []string{"todo-pwa-v2"}, names)

	_, err = cache.Match(ctx, "todo-pwa-v1", store.RequestKey(http.MethodGet, "/extra.js"))
	assert.ErrorIs(t, err, store.ErrCacheMiss, "prior generation must not be servable")

	v2.network.setOffline(true)
	for _, path := range testCacheCfg.Manifest {
		resp, err := v2.dispatcher.Dispatch(ctx, getRequest(path))
		require.NoError(t, err)
		assert.Equal(t, "v2 "+path, string(resp.Body), path)
	}
}
