package usecase

import (
	"context"
	"sync"
	"time"

	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"
)

// RateRefresher keeps the exchange-rate snapshot current: one eager fetch
// at startup and a periodic refresh afterwards
type RateRefresher struct {
	source   repository.ExchangeRateSource
	rateRepo repository.ExchangeRateRepository
	interval time.Duration
	logger   logger.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateRefresher creates a new rate refresher
func NewRateRefresher(
	source repository.ExchangeRateSource,
	rateRepo repository.ExchangeRateRepository,
	interval time.Duration,
	logger logger.Logger,
) *RateRefresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RateRefresher{
		source:   source,
		rateRepo: rateRepo,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Refresh fetches a fresh snapshot and replaces the stored one
func (r *RateRefresher) Refresh(ctx context.Context) error {
	table, err := r.source.FetchRates(ctx, time.Now())
	if err != nil {
		return err
	}

	if err := r.rateRepo.Put(ctx, table); err != nil {
		return err
	}

	r.logger.Info("Updated exchange rates", "currencies", len(table.Currencies), "date", table.Date)
	return nil
}

// Start refreshes eagerly, then on every tick until shutdown. A failed
// refresh is logged and retried on the next tick; the previous snapshot
// stays in place.
func (r *RateRefresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Error("Initial exchange rate refresh failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Rate refresher stopped")
			return nil
		case <-r.stopCh:
			r.logger.Info("Rate refresher stopped")
			return nil
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Error("Scheduled exchange rate refresh failed", "error", err)
			}
		}
	}
}

// Stop requests the refresh loop to halt
func (r *RateRefresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}
