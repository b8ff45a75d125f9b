// Package provider contains the gateways to the upstream ticket providers.
// Each gateway owns one lazily created, reused HTTP client; wire-format
// differences between providers stay inside their Search implementations.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/pkg/logger"
)

type gateway struct {
	name    string
	baseURL string
	timeout time.Duration
	logger  logger.Logger

	once   sync.Once
	client *http.Client
}

// httpClient returns the shared client, creating it on first use
func (g *gateway) httpClient() *http.Client {
	g.once.Do(func() {
		g.client = &http.Client{Timeout: g.timeout}
	})
	return g.client
}

// post issues the search call and returns the open response body. A non-2xx
// status is a provider failure.
func (g *gateway) post(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}
	return resp, nil
}

// Name identifies the provider in logs and result messages
func (g *gateway) Name() string {
	return g.name
}

// Close releases idle connections held by the shared client
func (g *gateway) Close() {
	if g.client != nil {
		g.client.CloseIdleConnections()
	}
}

func (g *gateway) fail(err error) error {
	return &entity.ProviderError{Provider: g.name, Err: err}
}
