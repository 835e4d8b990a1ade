package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/handler"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/server"
	"github.com/MKhiriev/go-todo-offline/internal/service"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/internal/workers"
	"github.com/MKhiriev/go-todo-offline/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("todo-offline-proxy", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("todo-offline-proxy", cfg.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	network, err := adapter.NewHTTPNetwork(cfg.Upstream, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating upstream client")
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, network, build, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	// boot first so the install starts before the first drain
	background := workers.NewWorkers(services.LifecycleBoot, services.SyncJob)

	srv, err := server.NewServer(handlers, background, cfg.Proxy, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
