package provider

import (
	"context"
	"encoding/json"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"
)

// AlphaClient is the gateway to provider alpha, which streams a JSON array
// of offers
type AlphaClient struct {
	gateway
}

// NewAlphaClient creates a new alpha gateway
func NewAlphaClient(baseURL string, timeout time.Duration, logger logger.Logger) repository.TicketProvider {
	return &AlphaClient{gateway{
		name:    "alpha",
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}}
}

// Search fetches the current offers from provider alpha
func (c *AlphaClient) Search(ctx context.Context) ([]entity.SearchResult, error) {
	resp, err := c.post(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	defer resp.Body.Close()

	var offers []entity.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, c.fail(err)
	}

	c.logger.Debug("Fetched offers from alpha", "count", len(offers))
	return offers, nil
}
