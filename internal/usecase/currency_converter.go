package usecase

import (
	"math"
	"strings"

	"ticketsearch-service/internal/domain/entity"
)

// CurrencyConverter rewrites offer prices into a requested currency at read
// time. Conversion is pure: the stored document is never mutated and two
// calls with the same snapshot yield the same prices.
type CurrencyConverter struct{}

// NewCurrencyConverter creates a new currency converter
func NewCurrencyConverter() *CurrencyConverter {
	return &CurrencyConverter{}
}

// Convert returns a copy of doc with a display price attached to every
// offer. Non-completed documents pass through unchanged. An unresolvable
// target or offer currency fails with UnsupportedCurrencyError naming it.
func (c *CurrencyConverter) Convert(doc *entity.SearchResultDocument, targetCurrency string, table *entity.ExchangeRateTable) (*entity.SearchResultDocument, error) {
	if doc.Status != entity.SearchCompleted {
		return doc, nil
	}

	target := strings.ToUpper(targetCurrency)
	targetRate, ok := table.UnitRate(target)
	if !ok {
		return nil, &entity.UnsupportedCurrencyError{Currency: target}
	}

	converted := *doc
	converted.Items = make([]entity.SearchResult, len(doc.Items))

	for i, item := range doc.Items {
		offerRate, ok := table.UnitRate(item.Pricing.Currency)
		if !ok {
			return nil, &entity.UnsupportedCurrencyError{Currency: item.Pricing.Currency}
		}

		// Pricing stays authoritative in the provider currency; only the
		// transient display price changes.
		amountInBase := item.Pricing.Total * offerRate
		amount := amountInBase
		if target != entity.BaseCurrency {
			amount = amountInBase / targetRate
		}

		item.Price = &entity.Price{
			Amount:   round2(amount),
			Currency: target,
		}
		converted.Items[i] = item
	}

	return &converted, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
