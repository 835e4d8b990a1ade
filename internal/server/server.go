package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/handler"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/workers"
)

type server struct {
	httpServer *httpServer
	background *workers.Workers
	logger     *logger.Logger
}

// NewServer builds the proxy server. background is started with the server
// and stopped after the HTTP server has drained; it may be nil.
func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Proxy, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}
	if background == nil {
		background = workers.NewWorkers()
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		background: background,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown() {
	// HTTP first, so no request enqueues after the sync job stopped
	s.httpServer.Shutdown()
	s.background.Stop()
}

func (s *server) run(ctx context.Context) error {
	s.background.Start(ctx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	s.Shutdown()
	if err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
