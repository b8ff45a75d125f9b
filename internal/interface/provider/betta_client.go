package provider

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"
)

// BettaClient is the gateway to provider betta, which returns its offer
// list as a raw JSON document
type BettaClient struct {
	gateway
}

// NewBettaClient creates a new betta gateway
func NewBettaClient(baseURL string, timeout time.Duration, logger logger.Logger) repository.TicketProvider {
	return &BettaClient{gateway{
		name:    "betta",
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}}
}

// Search fetches the current offers from provider betta
func (c *BettaClient) Search(ctx context.Context) ([]entity.SearchResult, error) {
	resp, err := c.post(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(err)
	}

	var offers []entity.SearchResult
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, c.fail(err)
	}

	c.logger.Debug("Fetched offers from betta", "count", len(offers))
	return offers, nil
}
