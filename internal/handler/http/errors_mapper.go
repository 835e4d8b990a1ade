package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/service"
	"github.com/MKhiriev/go-todo-offline/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrNothingWaiting:   http.StatusConflict,
	service.ErrGenerationActive: http.StatusConflict,
	service.ErrNoGenerationName: http.StatusBadRequest,
	service.ErrInstallFailed:    http.StatusBadGateway,

	adapter.ErrNetworkUnavailable: http.StatusBadGateway,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	// transient errors also wrap the failing query step
	if errors.Is(err, store.ErrTransient) {
		return http.StatusServiceUnavailable
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
