package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"), "todo-pwa-v1", logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyCacheVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), "", logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo_ReturnsBuildAndCacheVersion(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("3.1.4", "2026-10-01", "abc123"), "todo-pwa-v2", logger.Nop())
	require.NoError(t, err)

	got := svc.GetAppInfo(context.Background())

	assert.Equal(t, models.AppInfo{
		BuildVersion: "3.1.4",
		BuildDate:    "2026-10-01",
		BuildCommit:  "abc123",
		CacheVersion: "todo-pwa-v2",
	}, got)
}

func TestGetAppInfo_IsStable(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("0.0.1", "", ""), "todo-pwa-v1", logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, svc.GetAppInfo(ctx), svc.GetAppInfo(ctx), "info must not change between calls")
}
