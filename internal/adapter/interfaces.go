// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound side of the proxy: the network every
// strategy falls back on.
//
// The primary abstraction is [Network], which decouples the dispatcher, the
// sync runner and the lifecycle manager from the HTTP client. The package
// ships a resty-based implementation ([NewHTTPNetwork]) that forwards requests
// to the configured upstream origin.
//
// A request that produced any HTTP response, whatever its status, is a
// network success. Only transport failures (refused connection, DNS error,
// timeout) are reported, wrapped in [ErrNetworkUnavailable].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/network_mock.go -package=mock

// Network fetches a request from the upstream origin.
type Network interface {
	// Fetch sends req and returns whatever the upstream answered. Origin
	// relative URLs resolve against the upstream base URL; absolute URLs are
	// requested as they are. The returned error wraps [ErrNetworkUnavailable]
	// when no response was received.
	Fetch(ctx context.Context, req models.Request) (models.Response, error)
}
