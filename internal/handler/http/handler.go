package http

import (
	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/service"
	"github.com/MKhiriev/go-todo-offline/internal/utils"
)

type Handler struct {
	services *service.Services

	// origin is the proxy's own host:port. Absolute request URLs naming it
	// are treated as same-origin.
	origin string
	routes config.Routes

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Str("control_prefix", cfg.Routes.ControlPrefix).Msg("http handler created")
	return &Handler{
		services: services,
		origin:   cfg.Proxy.HTTPAddress,
		routes:   cfg.Routes,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
