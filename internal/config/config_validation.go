// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Proxy.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidProxyConfigs)
	}

	if cfg.Upstream.HTTPAddress == "" || cfg.Upstream.RequestTimeout <= 0 {
		return fmt.Errorf("%w: upstream address and request timeout are required", ErrInvalidUpstreamConfigs)
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return fmt.Errorf("%w: outbox needs a durable dsn", ErrInvalidStorageConfigs)
	}

	if cfg.Cache.Version == "" || len(cfg.Cache.Manifest) == 0 {
		return fmt.Errorf("%w: version and manifest are required", ErrInvalidCacheConfigs)
	}

	for _, path := range append([]string{cfg.Cache.OfflinePage, cfg.Cache.PlaceholderIcon}, cfg.Cache.Manifest...) {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%w: %q is not origin-relative", ErrInvalidCacheConfigs, path)
		}
	}

	if !strings.HasPrefix(cfg.Routes.TaskPath, "/") || !strings.HasPrefix(cfg.Routes.ControlPrefix, "/") {
		return ErrInvalidRoutesConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}

	return nil
}
