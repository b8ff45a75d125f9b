package handler

import (
	"errors"
	"net/http"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/internal/usecase"
	"ticketsearch-service/pkg/logger"
	"ticketsearch-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SearchHandler handles HTTP requests for ticket search
type SearchHandler struct {
	queue      repository.SearchQueueRepository
	resultRepo repository.SearchResultRepository
	rateRepo   repository.ExchangeRateRepository
	converter  *usecase.CurrencyConverter
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	queue repository.SearchQueueRepository,
	resultRepo repository.SearchResultRepository,
	rateRepo repository.ExchangeRateRepository,
	converter *usecase.CurrencyConverter,
	m *metrics.Metrics,
	logger logger.Logger,
) *SearchHandler {
	return &SearchHandler{
		queue:      queue,
		resultRepo: resultRepo,
		rateRepo:   rateRepo,
		converter:  converter,
		metrics:    m,
		logger:     logger,
	}
}

// RegisterRoutes mounts the search endpoints on the router group
func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.SubmitSearch)
	rg.GET("/results/:search_id/:currency", h.GetSearchResults)
}

// SubmitSearch enqueues a search job for asynchronous processing.
// POST /api/v1/search
func (h *SearchHandler) SubmitSearch(c *gin.Context) {
	searchID := uuid.NewString()

	entryID, err := h.queue.Enqueue(c.Request.Context(), &entity.SearchRequest{SearchID: searchID})
	if err != nil {
		h.logger.Error("Failed to publish search request", "searchId", searchID, "error", err)
		h.metrics.ErrorsCount.WithLabelValues("queue_append").Inc()
		c.JSON(http.StatusInternalServerError, entity.SearchResultDocument{
			SearchID: searchID,
			Status:   entity.SearchError,
			Message:  "Failed to process search request.",
		})
		return
	}

	h.logger.Info("Published search request", "searchId", searchID, "entryId", entryID)
	h.metrics.SearchesEnqueued.Inc()

	c.JSON(http.StatusOK, entity.SearchResultDocument{
		SearchID: searchID,
		Status:   entity.SearchPending,
		Message:  "Search request received and is being processed.",
	})
}

// GetSearchResults returns the aggregation document for a search id, with
// prices converted into the requested currency once the search completed.
// GET /api/v1/results/:search_id/:currency
func (h *SearchHandler) GetSearchResults(c *gin.Context) {
	searchID := c.Param("search_id")
	currency := c.Param("currency")

	doc, err := h.resultRepo.Get(c.Request.Context(), searchID)
	if err != nil {
		var corrupted *entity.CorruptedDocumentError
		switch {
		case errors.Is(err, entity.ErrResultNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Search results not found or still processing."})
		case errors.As(err, &corrupted):
			h.logger.Error("Failed to deserialize stored results", "searchId", searchID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupted stored search results."})
		default:
			h.logger.Error("Failed to load search results", "searchId", searchID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load search results."})
		}
		return
	}

	// Conversion only applies once the search completed
	if doc.Status != entity.SearchCompleted {
		c.JSON(http.StatusOK, doc)
		return
	}

	table, err := h.rateRepo.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load exchange rates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Exchange rates unavailable."})
		return
	}

	converted, err := h.converter.Convert(doc, currency, table)
	if err != nil {
		var unsupported *entity.UnsupportedCurrencyError
		if errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to convert search results", "searchId", searchID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert search results."})
		return
	}

	h.logger.Info("Returning search results", "searchId", searchID, "currency", currency)
	c.JSON(http.StatusOK, converted)
}
