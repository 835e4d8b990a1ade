// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/http"
	"strings"
)

// Source tells where a [Response] handed back to the application came from.
type Source string

const (
	SourceNetwork   Source = "network"
	SourceCache     Source = "cache"
	SourceFallback  Source = "fallback"
	SourceSynthetic Source = "synthetic"
)

// DestinationImage is the Sec-Fetch-Dest value of image requests.
const DestinationImage = "image"

// Request is an intercepted application request reduced to the inputs the
// dispatcher routes on plus what is needed to forward it upstream.
type Request struct {
	// Method is the HTTP verb ("GET", "POST", ...).
	Method string

	// URL identifies the resource. It is origin-relative (path and query) for
	// same-origin requests and absolute otherwise.
	URL string

	// Path is the URL path used for routing (task paths vs. everything else).
	Path string

	// Header holds the end-to-end request headers.
	Header http.Header

	// Body is the raw request body. BodyErr is set instead when reading the
	// body from the client failed.
	Body    []byte
	BodyErr error

	// Navigate is true for top-level navigations (Sec-Fetch-Mode: navigate).
	Navigate bool

	// SameOrigin is true when the request targets the proxy's own origin.
	SameOrigin bool

	// Destination is the request destination (Sec-Fetch-Dest), e.g. "image".
	Destination string
}

// AcceptsHTML reports whether the Accept header asks for an HTML document.
func (r Request) AcceptsHTML() bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// Response is an HTTP-shaped response returned to the application. Stored
// cache snapshots use the same shape.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`

	// Source is set by the dispatcher and never persisted.
	Source Source `json:"-"`
}

// From returns a copy of r marked as served from src.
func (r Response) From(src Source) Response {
	r.Source = src
	return r
}

// IsSuccess reports whether the status is in the 2xx class.
func (r Response) IsSuccess() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}
