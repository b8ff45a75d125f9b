package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const exchangeRatesKey = "exchange_rates"

// RedisExchangeRateRepository stores the current rate-table snapshot as a
// JSON blob under a single key
type RedisExchangeRateRepository struct {
	client *redis.Client
}

// NewRedisExchangeRateRepository creates a new exchange rate repository
func NewRedisExchangeRateRepository(client *redis.Client) repository.ExchangeRateRepository {
	return &RedisExchangeRateRepository{client: client}
}

// Get returns the latest snapshot, or entity.ErrNoRates when none is stored
func (r *RedisExchangeRateRepository) Get(ctx context.Context) (*entity.ExchangeRateTable, error) {
	raw, err := r.client.Get(ctx, exchangeRatesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entity.ErrNoRates
		}
		return nil, fmt.Errorf("failed to read exchange rates: %w", err)
	}

	var table entity.ExchangeRateTable
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rates: %w", err)
	}
	return &table, nil
}

// Put replaces the snapshot wholesale
func (r *RedisExchangeRateRepository) Put(ctx context.Context, table *entity.ExchangeRateTable) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode exchange rates: %w", err)
	}
	if err := r.client.Set(ctx, exchangeRatesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store exchange rates: %w", err)
	}
	return nil
}
