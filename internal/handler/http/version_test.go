package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-todo-offline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion_WritesAppInfo(t *testing.T) {
	svcs := newTestServices()

	rec := httptest.NewRecorder()
	svcs.handler().getVersion(rec, httptest.NewRequest(http.MethodGet, "/__offline/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.AppInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, svcs.appInfo.info, got)
}
