// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the offline
// proxy. It is populated by merging defaults, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Proxy holds the listen address of the intercepting HTTP server.
	Proxy Proxy `envPrefix:"PROXY_"`

	// Upstream holds the origin that serves the app shell and the task API.
	Upstream Upstream `envPrefix:"UPSTREAM_"`

	// Storage holds configuration for the outbox and cache backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache describes the cache generation installed at startup.
	Cache Cache `envPrefix:"CACHE_"`

	// Routes holds the paths the dispatcher classifies on.
	Routes Routes `envPrefix:"ROUTES_"`

	// Workers holds configuration for background sync and install retries.
	Workers Workers `envPrefix:"WORKERS_"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Proxy holds network and timeout settings of the inbound side.
type Proxy struct {
	// HTTPAddress is the TCP address the proxy listens on ("host:port").
	// Env: PROXY_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: PROXY_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Upstream holds the settings of the outbound client.
type Upstream struct {
	// HTTPAddress is the upstream origin, with or without scheme.
	// Env: UPSTREAM_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request; a timeout counts as a
	// network failure.
	// Env: UPSTREAM_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`

	// HotCache holds the in-process LRU settings.
	HotCache HotCache `envPrefix:"CACHE_"`
}

// DB holds connection settings for the outbox and cache database.
type DB struct {
	// DSN is either a SQLite file path or a postgres:// URL.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// HotCache holds settings of the in-process LRU in front of the cache table.
type HotCache struct {
	// Size is the maximum number of snapshots kept in memory.
	// Env: STORAGE_CACHE_SIZE
	Size int `env:"SIZE"`
}

// Cache describes the shell cache generation.
type Cache struct {
	// Version names the generation (for example "todo-pwa-v1").
	// Env: CACHE_VERSION
	Version string `env:"VERSION"`

	// Manifest is the ordered list of shell paths installed with the generation.
	// Env: CACHE_MANIFEST (comma separated)
	Manifest []string `env:"MANIFEST" envSeparator:","`

	// OfflinePage is served to navigations when neither network nor cache can.
	// Env: CACHE_OFFLINE_PAGE
	OfflinePage string `env:"OFFLINE_PAGE"`

	// PlaceholderIcon is served to image requests that cannot be fetched.
	// Env: CACHE_PLACEHOLDER_ICON
	PlaceholderIcon string `env:"PLACEHOLDER_ICON"`
}

// Routes holds the request paths with dedicated handling.
type Routes struct {
	// TaskPath is the prefix of the task API (reads and mutations).
	// Env: ROUTES_TASK_PATH
	TaskPath string `env:"TASK_PATH"`

	// ControlPrefix is the prefix of the proxy's own control endpoints.
	// Env: ROUTES_CONTROL_PREFIX
	ControlPrefix string `env:"CONTROL_PREFIX"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is how often the outbox is drained without an explicit trigger.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// InstallRetryMax caps the backoff between failed install attempts at boot.
	// Env: WORKERS_INSTALL_RETRY_MAX
	InstallRetryMax time.Duration `env:"INSTALL_RETRY_MAX"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
