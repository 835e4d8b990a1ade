package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler creates a Handler with a nop logger.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop(), traceIDs: utils.NewUUIDGenerator()}
}

func executeWithTraceID(h *Handler, traceIDHeaderValue string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if traceIDHeaderValue != "" {
		req.Header.Set(traceIDHeader, traceIDHeaderValue)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool
		wantV7          bool
	}{
		{
			name:            "trace ID from request header is reused",
			requestTraceID:  "my-custom-trace-id",
			wantSameTraceID: true,
		},
		{
			name:           "no trace ID, a v7 UUID is generated",
			requestTraceID: "",
			wantV7:         true,
		},
		{
			name:            "UUID v4 from the client is kept as is",
			requestTraceID:  "550e8400-e29b-41d4-a716-446655440000",
			wantSameTraceID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, captured := executeWithTraceID(newTestHandler(), tt.requestTraceID)
			require.NotNil(t, captured, "next handler must be called")

			responseTraceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID)

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, responseTraceID)
			}
			if tt.wantV7 {
				id, err := uuid.Parse(responseTraceID)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), id.Version())
			}
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newTestHandler()
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		rr, _ := executeWithTraceID(h, "")
		id := rr.Header().Get(traceIDHeader)

		_, duplicate := seen[id]
		require.False(t, duplicate, "duplicate trace ID generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerInContext(t *testing.T) {
	var ctxLogger *logger.Logger

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromRequest(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	newTestHandler().withTraceID(next).ServeHTTP(rr, req)

	require.NotNil(t, ctxLogger)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestWithTraceID_OriginalRequestNotMutated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	originalCtx := req.Context()
	newTestHandler().withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, originalCtx, req.Context())
}
