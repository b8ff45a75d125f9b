// internal/domain/entity/exchange_rate.go
package entity

import (
	"strings"
)

// BaseCurrency is the national bank's base currency. Every rate in the
// table is quoted against it; the base itself never appears as an item.
const BaseCurrency = "KZT"

// Currency is one entry of the national bank rate feed. Description is the
// price of Quantity units of the currency in the base currency.
type Currency struct {
	FullName    string  `json:"full_name"`
	Title       string  `json:"title"`
	Description float64 `json:"description"`
	Quantity    int     `json:"quantity"`
	Index       string  `json:"index,omitempty"`
	Change      float64 `json:"change"`
}

// UnitRate returns the base-currency price of a single unit
func (c Currency) UnitRate() float64 {
	if c.Quantity > 1 {
		return c.Description / float64(c.Quantity)
	}
	return c.Description
}

// ExchangeRateTable is the snapshot of national bank rates, replaced
// wholesale on each refresh
type ExchangeRateTable struct {
	Generator   string     `json:"generator"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Copyright   string     `json:"copyright"`
	Date        string     `json:"date"`
	Currencies  []Currency `json:"currencies"`
}

// UnitRate resolves the per-unit base-currency rate for a code,
// case-insensitively. The base currency resolves to the identity rate.
func (t *ExchangeRateTable) UnitRate(code string) (float64, bool) {
	code = strings.ToUpper(code)
	if code == BaseCurrency {
		return 1.0, true
	}
	for _, c := range t.Currencies {
		if strings.ToUpper(c.Title) == code {
			return c.UnitRate(), true
		}
	}
	return 0, false
}
