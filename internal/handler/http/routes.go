package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// proxy's own endpoints, never forwarded upstream
	router.Route(h.routes.ControlPrefix, func(r chi.Router) {
		r.Post("/sync", h.flushOutbox)
		r.Post("/install", h.installGeneration)
		r.Post("/skip-waiting", h.skipWaiting)
		r.Get("/status", h.getStatus)
		r.Get("/version", h.getVersion)
		r.NotFound(http.NotFound)
	})

	// everything else goes through the dispatcher
	router.NotFound(h.intercept)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
