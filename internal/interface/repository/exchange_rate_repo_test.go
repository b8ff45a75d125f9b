package repository

import (
	"context"
	"testing"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateRepo(t *testing.T) (repository.ExchangeRateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisExchangeRateRepository(client), mr
}

func TestGetWithoutSnapshot(t *testing.T) {
	repo, _ := newTestRateRepo(t)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, entity.ErrNoRates)
}

func TestPutGetRoundTrip(t *testing.T) {
	repo, _ := newTestRateRepo(t)
	ctx := context.Background()

	table := &entity.ExchangeRateTable{
		Date: "01.08.2026",
		Currencies: []entity.Currency{
			{FullName: "Us Dollar", Title: "USD", Description: 450.5, Quantity: 1, Index: "UP", Change: 1.2},
			{FullName: "Japanese Yen", Title: "JPY", Description: 330, Quantity: 100, Index: "DOWN", Change: -0.1},
		},
	}
	require.NoError(t, repo.Put(ctx, table))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, got)

	rate, ok := got.UnitRate("jpy")
	require.True(t, ok)
	assert.InDelta(t, 3.3, rate, 1e-9)
}

func TestPutReplacesSnapshotWholesale(t *testing.T) {
	repo, _ := newTestRateRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &entity.ExchangeRateTable{Date: "01.08.2026", Currencies: []entity.Currency{{Title: "USD", Description: 450, Quantity: 1}}}))
	require.NoError(t, repo.Put(ctx, &entity.ExchangeRateTable{Date: "02.08.2026", Currencies: []entity.Currency{{Title: "EUR", Description: 500, Quantity: 1}}}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "02.08.2026", got.Date)
	require.Len(t, got.Currencies, 1)
	assert.Equal(t, "EUR", got.Currencies[0].Title)
}

func TestGetCorruptedSnapshot(t *testing.T) {
	repo, mr := newTestRateRepo(t)
	mr.Set("exchange_rates", "not-json")

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrNoRates)
}
