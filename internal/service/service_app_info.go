package service

import (
	"context"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

type appInfoService struct {
	build        models.AppBuildInfo
	cacheVersion string

	logger *logger.Logger
}

func NewAppInfoService(build models.AppBuildInfo, cacheVersion string, logger *logger.Logger) (AppInfoService, error) {
	if cacheVersion == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:        build,
		cacheVersion: cacheVersion,
		logger:       logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return models.AppInfo{
		BuildVersion: s.build.BuildVersion(),
		BuildDate:    s.build.BuildDate(),
		BuildCommit:  s.build.BuildCommit(),
		CacheVersion: s.cacheVersion,
	}
}
