// Package nationalbank fetches the national bank's daily exchange rate
// feed and parses it into the rate-table snapshot.
package nationalbank

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Client implements ExchangeRateSource against the national bank RSS feed
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewClient creates a new national bank client
func NewClient(baseURL string, timeout time.Duration, logger logger.Logger) repository.ExchangeRateSource {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// feed mirrors the <rates> XML document of the national bank feed
type feed struct {
	XMLName     xml.Name   `xml:"rates"`
	Generator   string     `xml:"generator"`
	Title       string     `xml:"title"`
	Description string     `xml:"description"`
	Copyright   string     `xml:"copyright"`
	Date        string     `xml:"date"`
	Items       []feedItem `xml:"item"`
}

type feedItem struct {
	FullName    string  `xml:"fullname"`
	Title       string  `xml:"title"`
	Description float64 `xml:"description"`
	Quantity    int     `xml:"quantity"`
	Index       string  `xml:"index"`
	Change      float64 `xml:"change"`
}

// FetchRates downloads and parses the rate table effective on the given date
func (c *Client) FetchRates(ctx context.Context, date time.Time) (*entity.ExchangeRateTable, error) {
	url := fmt.Sprintf("%s?fdate=%s", c.baseURL, date.Format("02.01.2006"))
	c.logger.Debug("Requesting exchange rates", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates request returned status %d", resp.StatusCode)
	}

	var doc feed
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse rates feed: %w", err)
	}

	return parseFeed(&doc), nil
}

func parseFeed(doc *feed) *entity.ExchangeRateTable {
	title := cases.Title(language.English)

	currencies := make([]entity.Currency, 0, len(doc.Items))
	for _, item := range doc.Items {
		currencies = append(currencies, entity.Currency{
			FullName:    title.String(item.FullName),
			Title:       item.Title,
			Description: item.Description,
			Quantity:    item.Quantity,
			Index:       item.Index,
			Change:      item.Change,
		})
	}

	return &entity.ExchangeRateTable{
		Generator:   doc.Generator,
		Title:       doc.Title,
		Description: doc.Description,
		Copyright:   doc.Copyright,
		Date:        doc.Date,
		Currencies:  currencies,
	}
}
