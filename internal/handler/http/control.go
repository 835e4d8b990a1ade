// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/utils"
	"github.com/MKhiriev/go-todo-offline/models"
)

type errorBody struct {
	Error string `json:"error"`
}

// flushOutbox drains the outbox right away and reports what was delivered.
// Calling it with an empty queue is harmless.
func (h *Handler) flushOutbox(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	report, err := h.services.SyncRunner.Run(r.Context())
	if err != nil {
		log.Err(err).Msg("manual outbox flush failed")
		h.writeError(w, r, err)
		return
	}

	log.Info().
		Int("attempted", report.Attempted).
		Int("delivered", report.Delivered).
		Int("retained", report.Retained).
		Msg("manual outbox flush")
	h.writeJSON(w, r, report, http.StatusOK)
}

// installGeneration fetches the shell into the generation named by the
// "generation" query parameter and leaves it waiting. The active generation
// keeps serving until skipWaiting.
func (h *Handler) installGeneration(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("generation")
	if err := h.services.LifecycleManager.Install(r.Context(), name); err != nil {
		logger.FromRequest(r).Err(err).Str("generation", name).Msg("install failed")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, h.services.LifecycleManager.Status(), http.StatusOK)
}

// skipWaiting activates the generation that finished installing.
func (h *Handler) skipWaiting(w http.ResponseWriter, r *http.Request) {
	if err := h.services.LifecycleManager.Activate(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("skip waiting failed")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, h.services.LifecycleManager.Status(), http.StatusOK)
}

// getStatus reports the lifecycle state and the outbox length. A failing
// outbox count is reported as -1 rather than failing the request.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	pending, err := h.services.OutboxService.Pending(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("counting pending mutations")
		pending = -1
	}

	h.writeJSON(w, r, models.Status{
		Lifecycle: h.services.LifecycleManager.Status(),
		Pending:   pending,
	}, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeJSON(w, r, errorBody{Error: err.Error()}, statusFromError(err))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response")
	}
}
