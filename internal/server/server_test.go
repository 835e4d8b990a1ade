package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/handler"
	httpHandler "github.com/MKhiriev/go-todo-offline/internal/handler/http"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/service"
	"github.com/MKhiriev/go-todo-offline/internal/workers"
	"github.com/MKhiriev/go-todo-offline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWorker struct {
	mu      sync.Mutex
	started bool
	stopped bool
}

func (w *recordingWorker) Start(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.started = true
}

func (w *recordingWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}

func (w *recordingWorker) state() (bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started, w.stopped
}

type stubAppInfo struct{}

func (stubAppInfo) GetAppInfo(context.Context) models.AppInfo {
	return models.AppInfo{BuildVersion: "test", CacheVersion: "todo-pwa-v1"}
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestHandlers(addr string) *handler.Handlers {
	cfg := config.StructuredConfig{
		Proxy:  config.Proxy{HTTPAddress: addr},
		Routes: config.Routes{TaskPath: "/api/todos", ControlPrefix: "/__offline"},
	}
	svcs := &service.Services{AppInfoService: stubAppInfo{}}
	return &handler.Handlers{HTTP: httpHandler.NewHandler(svcs, cfg, logger.Nop())}
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Proxy{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(nil, nil, config.Proxy{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	worker := &recordingWorker{}

	srv, err := NewServer(newTestHandlers(addr), workers.NewWorkers(worker), config.Proxy{
		HTTPAddress:     addr,
		ShutdownTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*server).run(ctx) }()

	url := fmt.Sprintf("http://%s/__offline/version", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	started, stopped := worker.state()
	assert.True(t, started)
	assert.False(t, stopped)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, stopped = worker.state()
	assert.True(t, stopped)
}

func TestServer_RunReturnsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	addr := l.Addr().String()
	worker := &recordingWorker{}
	srv, err := NewServer(newTestHandlers(addr), workers.NewWorkers(worker), config.Proxy{HTTPAddress: addr}, logger.Nop())
	require.NoError(t, err)

	err = srv.(*server).run(context.Background())
	require.Error(t, err)

	_, stopped := worker.state()
	assert.True(t, stopped)
}
