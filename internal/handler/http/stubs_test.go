package http

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/service"
	"github.com/MKhiriev/go-todo-offline/models"
)

// ---- Stub: Dispatcher ----

type stubDispatcher struct {
	mu    sync.Mutex
	resp  models.Response
	err   error
	got   []models.Request
	owner string
}

func (s *stubDispatcher) Dispatch(_ context.Context, req models.Request) (models.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, req)
	return s.resp, s.err
}

func (s *stubDispatcher) Claim(generation string) { s.owner = generation }

func (s *stubDispatcher) Controlling() (string, bool) { return s.owner, s.owner != "" }

func (s *stubDispatcher) last() models.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.got[len(s.got)-1]
}

func (s *stubDispatcher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

// ---- Stub: SyncRunner ----

type stubSyncRunner struct {
	report models.SyncReport
	err    error
	runs   int
}

func (s *stubSyncRunner) Run(context.Context) (models.SyncReport, error) {
	s.runs++
	return s.report, s.err
}

// ---- Stub: OutboxService ----

type stubOutbox struct {
	pending int
	err     error
}

func (s *stubOutbox) Enqueue(context.Context, models.QueuedMutation) (int64, error) { return 1, nil }
func (s *stubOutbox) ListAll(context.Context) ([]models.QueuedMutation, error)      { return nil, nil }
func (s *stubOutbox) Remove(context.Context, int64) error                           { return nil }
func (s *stubOutbox) Pending(context.Context) (int, error)                          { return s.pending, s.err }

// ---- Stub: LifecycleManager ----

type stubLifecycle struct {
	status      models.LifecycleStatus
	activateErr error
	activated   int
	installErr  error
	installed   []string
}

func (s *stubLifecycle) Install(_ context.Context, name string) error {
	s.installed = append(s.installed, name)
	if s.installErr != nil {
		return s.installErr
	}
	s.status.State = models.StateWaiting
	s.status.Generation = name
	return nil
}

func (s *stubLifecycle) Activate(context.Context) error {
	s.activated++
	if s.activateErr != nil {
		return s.activateErr
	}
	s.status.State = models.StateActive
	s.status.Active = s.status.Generation
	return nil
}

func (s *stubLifecycle) Start(context.Context) error { return nil }

func (s *stubLifecycle) Status() models.LifecycleStatus { return s.status }

// ---- Stub: AppInfoService ----

type stubAppInfo struct {
	info models.AppInfo
}

func (s *stubAppInfo) GetAppInfo(context.Context) models.AppInfo { return s.info }

// ---- Helpers ----

var testConfig = config.StructuredConfig{
	Proxy: config.Proxy{HTTPAddress: "localhost:8081"},
	Routes: config.Routes{
		TaskPath:      "/api/todos",
		ControlPrefix: "/__offline",
	},
}

// testServices bundles the stubs behind a service.Services.
type testServices struct {
	dispatcher *stubDispatcher
	runner     *stubSyncRunner
	outbox     *stubOutbox
	lifecycle  *stubLifecycle
	appInfo    *stubAppInfo
}

func newTestServices() *testServices {
	return &testServices{
		dispatcher: &stubDispatcher{},
		runner:     &stubSyncRunner{},
		outbox:     &stubOutbox{},
		lifecycle: &stubLifecycle{status: models.LifecycleStatus{
			State:      models.StateWaiting,
			Generation: "todo-pwa-v2",
			Active:     "todo-pwa-v1",
		}},
		appInfo: &stubAppInfo{info: models.AppInfo{
			BuildVersion: "1.2.3",
			BuildDate:    "2026-10-01",
			BuildCommit:  "abc123",
			CacheVersion: "todo-pwa-v2",
		}},
	}
}

func (s *testServices) services() *service.Services {
	return &service.Services{
		Dispatcher:       s.dispatcher,
		OutboxService:    s.outbox,
		SyncRunner:       s.runner,
		LifecycleManager: s.lifecycle,
		AppInfoService:   s.appInfo,
	}
}

func (s *testServices) handler() *Handler {
	return NewHandler(s.services(), testConfig, logger.Nop())
}
