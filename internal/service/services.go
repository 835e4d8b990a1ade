package service

import (
	"fmt"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/models"
)

type Services struct {
	Dispatcher       Dispatcher
	OutboxService    OutboxService
	SyncRunner       SyncRunner
	SyncJob          SyncJob
	LifecycleManager LifecycleManager
	LifecycleBoot    *LifecycleBoot
	AppInfoService   AppInfoService
}

func NewServices(
	storages *store.Storages,
	network adapter.Network,
	build models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	outbox := NewOutboxService(storages.Outbox, logger)
	runner := NewSyncRunner(outbox, network, cfg.Routes.TaskPath, logger)
	job := NewSyncJob(runner, cfg.Workers.SyncInterval, logger)
	dispatcher := NewDispatcher(network, storages.Cache, outbox, job, cfg.Routes, cfg.Cache, logger)
	lifecycle := NewLifecycleManager(network, storages.Cache, dispatcher, cfg.Cache, logger)

	appInfo, err := NewAppInfoService(build, cfg.Cache.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		Dispatcher:       dispatcher,
		OutboxService:    outbox,
		SyncRunner:       runner,
		SyncJob:          job,
		LifecycleManager: lifecycle,
		LifecycleBoot:    NewLifecycleBoot(lifecycle, cfg.Workers.InstallRetryMax, logger),
		AppInfoService:   appInfo,
	}, nil
}
