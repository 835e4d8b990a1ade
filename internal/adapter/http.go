package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/internal/utils"
	"github.com/MKhiriev/go-todo-offline/models"
)

type httpNetwork struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPNetwork constructs the resty implementation of [Network].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. A timed out request counts as a network failure.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPNetwork(cfg config.Upstream, logger *logger.Logger) (Network, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpNetwork{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpNetwork) Fetch(ctx context.Context, req models.Request) (models.Response, error) {
	log := logger.FromContext(ctx)

	r := h.client.R().SetContext(ctx)
	r.Header = utils.EndToEndHeaders(req.Header)
	// the transport negotiates compression so snapshots are stored decoded
	r.Header.Del("Accept-Encoding")
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		log.Debug().Err(err).
			Str("func", "httpNetwork.Fetch").
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("upstream unreachable")
		return models.Response{}, fmt.Errorf("%w: %s %s: %w", ErrNetworkUnavailable, req.Method, req.URL, err)
	}

	return models.Response{
		Status: resp.StatusCode(),
		Header: utils.EndToEndHeaders(resp.Header()),
		Body:   resp.Body(),
		Source: models.SourceNetwork,
	}, nil
}
