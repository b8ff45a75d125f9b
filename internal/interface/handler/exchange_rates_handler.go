package handler

import (
	"errors"
	"net/http"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ExchangeRatesHandler handles HTTP requests for exchange rate data
type ExchangeRatesHandler struct {
	rateRepo repository.ExchangeRateRepository
	source   repository.ExchangeRateSource
	logger   logger.Logger
}

// NewExchangeRatesHandler creates a new exchange rates handler
func NewExchangeRatesHandler(
	rateRepo repository.ExchangeRateRepository,
	source repository.ExchangeRateSource,
	logger logger.Logger,
) *ExchangeRatesHandler {
	return &ExchangeRatesHandler{
		rateRepo: rateRepo,
		source:   source,
		logger:   logger,
	}
}

// RegisterRoutes mounts the exchange rate endpoints on the router group
func (h *ExchangeRatesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/currencies", h.ListCurrencies)
}

type currencyInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ListCurrencies returns all currencies of the cached rate snapshot,
// fetching a fresh one from the national bank when the cache is empty.
// GET /api/v1/currencies
func (h *ExchangeRatesHandler) ListCurrencies(c *gin.Context) {
	ctx := c.Request.Context()

	table, err := h.rateRepo.Get(ctx)
	if errors.Is(err, entity.ErrNoRates) {
		h.logger.Info("No cached rates found, fetching from national bank")
		table, err = h.source.FetchRates(ctx, time.Now())
		if err == nil {
			if putErr := h.rateRepo.Put(ctx, table); putErr != nil {
				h.logger.Error("Failed to cache fetched rates", "error", putErr)
			}
		}
	}
	if err != nil {
		h.logger.Error("Failed to load currencies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching currencies."})
		return
	}

	currencies := make([]currencyInfo, 0, len(table.Currencies))
	for _, curr := range table.Currencies {
		currencies = append(currencies, currencyInfo{Code: curr.Title, Name: curr.FullName})
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies, "count": len(currencies)})
}
