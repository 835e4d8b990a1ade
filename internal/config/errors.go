package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidProxyConfigs indicates invalid listen settings.
	ErrInvalidProxyConfigs = errors.New("invalid proxy configuration")
	// ErrInvalidUpstreamConfigs indicates invalid upstream settings
	// (for example, missing address or request timeout).
	ErrInvalidUpstreamConfigs = errors.New("invalid upstream configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCacheConfigs indicates an incomplete cache generation description.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidRoutesConfigs indicates task or control paths that are not
	// origin-relative.
	ErrInvalidRoutesConfigs = errors.New("invalid routes configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)
