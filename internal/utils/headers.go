package utils

import (
	"net/http"
	"net/textproto"
	"strings"
)

// hopByHopHeaders apply to a single connection and are not forwarded
// between the inbound and outbound side of the proxy (RFC 9110, 7.6.1).
// Content-Length is recomputed by whichever side writes the body.
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Host":                {},
	"Content-Length":      {},
}

// IsHopByHop reports whether the header name must not be forwarded.
func IsHopByHop(name string) bool {
	_, ok := hopByHopHeaders[textproto.CanonicalMIMEHeaderKey(name)]
	return ok
}

// EndToEndHeaders returns a copy of h without hop-by-hop headers or headers
// named in its Connection field. A nil h yields an empty header.
func EndToEndHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))

	connection := make(map[string]struct{})
	for _, v := range h.Values("Connection") {
		for _, name := range splitHeaderList(v) {
			connection[textproto.CanonicalMIMEHeaderKey(name)] = struct{}{}
		}
	}

	for name, values := range h {
		if IsHopByHop(name) {
			continue
		}
		if _, ok := connection[textproto.CanonicalMIMEHeaderKey(name)]; ok {
			continue
		}
		out[name] = append([]string(nil), values...)
	}

	return out
}

func splitHeaderList(v string) []string {
	var out []string
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
