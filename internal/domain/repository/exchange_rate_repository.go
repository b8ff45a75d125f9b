package repository

import (
	"context"
	"time"

	"ticketsearch-service/internal/domain/entity"
)

// ExchangeRateRepository holds the single current rate-table snapshot.
// Each Put replaces the snapshot wholesale.
type ExchangeRateRepository interface {
	// Get returns entity.ErrNoRates when no snapshot has been stored yet.
	Get(ctx context.Context) (*entity.ExchangeRateTable, error)
	Put(ctx context.Context, table *entity.ExchangeRateTable) error
}

// ExchangeRateSource fetches a fresh rate table from the upstream feed
type ExchangeRateSource interface {
	FetchRates(ctx context.Context, date time.Time) (*entity.ExchangeRateTable, error)
}
