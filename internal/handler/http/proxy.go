// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/utils"
	"github.com/MKhiriev/go-todo-offline/models"
)

const (
	// sourceHeader tells the application where a response came from.
	sourceHeader = "X-Offline-Source"

	// maxBodyBytes bounds intercepted request bodies. A larger body counts
	// as unreadable.
	maxBodyBytes = 10 << 20
)

// intercept hands every non-control request to the dispatcher and writes its
// answer back. Only a failed default-route request has no answer; the client
// then gets 502.
func (h *Handler) intercept(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resp, err := h.services.Dispatcher.Dispatch(r.Context(), h.toRequest(w, r))
	if err != nil {
		log.Warn().Err(err).Str("url", r.URL.String()).Msg("request failed with nothing cached")
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	header := w.Header()
	for name, values := range utils.EndToEndHeaders(resp.Header) {
		for _, v := range values {
			header.Add(name, v)
		}
	}
	header.Set(sourceHeader, string(resp.Source))
	header.Set("Content-Length", strconv.Itoa(len(resp.Body)))

	w.WriteHeader(resp.Status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(resp.Body); err != nil {
		log.Err(err).Msg("writing intercepted response")
	}
}

// toRequest reduces r to what the dispatcher routes on.
func (h *Handler) toRequest(w http.ResponseWriter, r *http.Request) models.Request {
	req := models.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Header:      utils.EndToEndHeaders(r.Header),
		Navigate:    r.Header.Get("Sec-Fetch-Mode") == "navigate",
		Destination: r.Header.Get("Sec-Fetch-Dest"),
		SameOrigin:  h.isSameOrigin(r),
	}

	if req.SameOrigin {
		req.URL = r.URL.RequestURI()
	} else {
		req.URL = r.URL.String()
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			req.BodyErr = err
		} else {
			req.Body = body
		}
	}

	return req
}

// isSameOrigin reports whether r targets the proxy itself. Origin-form
// requests always do; absolute-form requests (a client using the proxy as
// a forward proxy) do only when they name the proxy's own address. A listen
// address with an empty or unspecified host, like ":8081", is reached
// through any loopback name on its port.
func (h *Handler) isSameOrigin(r *http.Request) bool {
	if !r.URL.IsAbs() {
		return true
	}
	if strings.EqualFold(r.URL.Host, h.origin) {
		return true
	}

	listenHost, listenPort, err := net.SplitHostPort(h.origin)
	if err != nil {
		return false
	}

	port := r.URL.Port()
	if port == "" {
		port = defaultPort(r.URL.Scheme)
	}
	if port != listenPort {
		return false
	}

	host := r.URL.Hostname()
	switch {
	case strings.EqualFold(host, listenHost):
		return true
	case listenHost == "" || isUnspecified(listenHost):
		return isLoopback(host)
	default:
		return isLoopback(listenHost) && isLoopback(host)
	}
}

func defaultPort(scheme string) string {
	if strings.EqualFold(scheme, "https") {
		return "443"
	}
	return "80"
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isUnspecified(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsUnspecified()
}
