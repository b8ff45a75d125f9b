package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/internal/usecase"
	"ticketsearch-service/pkg/logger"
	"ticketsearch-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.NewMetrics("ticketsearch_handler_test")

type fakeQueue struct {
	enqueueErr error
	enqueued   []string
}

func (q *fakeQueue) EnsureGroup(ctx context.Context) error { return nil }

func (q *fakeQueue) Enqueue(ctx context.Context, req *entity.SearchRequest) (string, error) {
	if q.enqueueErr != nil {
		return "", q.enqueueErr
	}
	q.enqueued = append(q.enqueued, req.SearchID)
	return "1-0", nil
}

func (q *fakeQueue) ReadPending(ctx context.Context, count int64, block time.Duration) ([]repository.QueueEntry, error) {
	return nil, nil
}

func (q *fakeQueue) Ack(ctx context.Context, entryID string) error { return nil }

type fakeResultRepo struct {
	docs map[string]*entity.SearchResultDocument
	err  error
}

func (r *fakeResultRepo) Get(ctx context.Context, searchID string) (*entity.SearchResultDocument, error) {
	if r.err != nil {
		return nil, r.err
	}
	doc, ok := r.docs[searchID]
	if !ok {
		return nil, entity.ErrResultNotFound
	}
	return doc, nil
}

func (r *fakeResultRepo) Put(ctx context.Context, doc *entity.SearchResultDocument) error { return nil }

type fakeRateRepo struct {
	table *entity.ExchangeRateTable
	puts  int
}

func (r *fakeRateRepo) Get(ctx context.Context) (*entity.ExchangeRateTable, error) {
	if r.table == nil {
		return nil, entity.ErrNoRates
	}
	return r.table, nil
}

func (r *fakeRateRepo) Put(ctx context.Context, table *entity.ExchangeRateTable) error {
	r.table = table
	r.puts++
	return nil
}

type fakeRateSource struct {
	table *entity.ExchangeRateTable
	err   error
}

func (s *fakeRateSource) FetchRates(ctx context.Context, date time.Time) (*entity.ExchangeRateTable, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func usdTable() *entity.ExchangeRateTable {
	return &entity.ExchangeRateTable{
		Date: "01.08.2026",
		Currencies: []entity.Currency{
			{FullName: "Us Dollar", Title: "USD", Description: 450.0, Quantity: 1},
		},
	}
}

func newRouter(queue repository.SearchQueueRepository, results repository.SearchResultRepository, rates repository.ExchangeRateRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSearchHandler(queue, results, rates, usecase.NewCurrencyConverter(), testMetrics, logger.NewNop())
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitSearch(t *testing.T) {
	queue := &fakeQueue{}
	router := newRouter(queue, &fakeResultRepo{}, &fakeRateRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/search")
	require.Equal(t, http.StatusOK, w.Code)

	var body entity.SearchResultDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, entity.SearchPending, body.Status)
	assert.NotEmpty(t, body.SearchID)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, body.SearchID, queue.enqueued[0])
}

func TestSubmitSearchQueueFailure(t *testing.T) {
	queue := &fakeQueue{enqueueErr: errors.New("redis down")}
	router := newRouter(queue, &fakeResultRepo{}, &fakeRateRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/search")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body entity.SearchResultDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, entity.SearchError, body.Status)
	assert.NotEmpty(t, body.Message)
}

func TestGetSearchResultsNotFound(t *testing.T) {
	router := newRouter(&fakeQueue{}, &fakeResultRepo{}, &fakeRateRepo{})

	w := doRequest(router, http.MethodGet, "/api/v1/results/unknown/KZT")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSearchResultsPendingPassThrough(t *testing.T) {
	results := &fakeResultRepo{docs: map[string]*entity.SearchResultDocument{
		"s-1": {SearchID: "s-1", Status: entity.SearchPending},
	}}
	router := newRouter(&fakeQueue{}, results, &fakeRateRepo{})

	w := doRequest(router, http.MethodGet, "/api/v1/results/s-1/USD")
	require.Equal(t, http.StatusOK, w.Code)

	var body entity.SearchResultDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, entity.SearchPending, body.Status)
	assert.Empty(t, body.Items)
}

func TestGetSearchResultsConverted(t *testing.T) {
	results := &fakeResultRepo{docs: map[string]*entity.SearchResultDocument{
		"s-1": {
			SearchID: "s-1",
			Status:   entity.SearchCompleted,
			Items: []entity.SearchResult{
				{ValidatingAirline: "KC", Pricing: entity.Pricing{Total: 100, Base: 80, Taxes: 20, Currency: "USD"}},
			},
		},
	}}
	router := newRouter(&fakeQueue{}, results, &fakeRateRepo{table: usdTable()})

	w := doRequest(router, http.MethodGet, "/api/v1/results/s-1/kzt")
	require.Equal(t, http.StatusOK, w.Code)

	var body entity.SearchResultDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.NotNil(t, body.Items[0].Price)
	assert.Equal(t, 45000.0, body.Items[0].Price.Amount)
	assert.Equal(t, "KZT", body.Items[0].Price.Currency)
	// Authoritative pricing is untouched
	assert.Equal(t, "USD", body.Items[0].Pricing.Currency)
}

func TestGetSearchResultsUnsupportedCurrency(t *testing.T) {
	results := &fakeResultRepo{docs: map[string]*entity.SearchResultDocument{
		"s-1": {
			SearchID: "s-1",
			Status:   entity.SearchCompleted,
			Items: []entity.SearchResult{
				{Pricing: entity.Pricing{Total: 100, Currency: "USD"}},
			},
		},
	}}
	router := newRouter(&fakeQueue{}, results, &fakeRateRepo{table: usdTable()})

	w := doRequest(router, http.MethodGet, "/api/v1/results/s-1/XXX")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "XXX")
}

func TestGetSearchResultsCorruptedDocument(t *testing.T) {
	results := &fakeResultRepo{err: &entity.CorruptedDocumentError{SearchID: "s-1", Err: errors.New("bad shape")}}
	router := newRouter(&fakeQueue{}, results, &fakeRateRepo{})

	w := doRequest(router, http.MethodGet, "/api/v1/results/s-1/KZT")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSearchResultsRatesUnavailable(t *testing.T) {
	results := &fakeResultRepo{docs: map[string]*entity.SearchResultDocument{
		"s-1": {SearchID: "s-1", Status: entity.SearchCompleted},
	}}
	router := newRouter(&fakeQueue{}, results, &fakeRateRepo{})

	w := doRequest(router, http.MethodGet, "/api/v1/results/s-1/KZT")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
