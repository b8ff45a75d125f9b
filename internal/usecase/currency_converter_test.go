package usecase

import (
	"testing"

	"ticketsearch-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRateTable() *entity.ExchangeRateTable {
	return &entity.ExchangeRateTable{
		Date: "01.08.2026",
		Currencies: []entity.Currency{
			{FullName: "Us Dollar", Title: "USD", Description: 450.0, Quantity: 1, Change: 0.5},
			{FullName: "Euro", Title: "EUR", Description: 500.0, Quantity: 1, Change: -0.3},
			{FullName: "Japanese Yen", Title: "JPY", Description: 330.0, Quantity: 100, Change: 0.1},
		},
	}
}

func completedDoc(total float64, currency string) *entity.SearchResultDocument {
	return &entity.SearchResultDocument{
		SearchID: "s-1",
		Status:   entity.SearchCompleted,
		Items: []entity.SearchResult{
			{
				Refundable:        true,
				ValidatingAirline: "KC",
				Pricing:           entity.Pricing{Total: total, Base: total * 0.8, Taxes: total * 0.2, Currency: currency},
			},
		},
	}
}

func TestConvertIdentityKZT(t *testing.T) {
	conv := NewCurrencyConverter()
	doc := completedDoc(52000, "KZT")

	got, err := conv.Convert(doc, "kzt", testRateTable())
	require.NoError(t, err)
	require.NotNil(t, got.Items[0].Price)
	assert.Equal(t, 52000.0, got.Items[0].Price.Amount)
	assert.Equal(t, "KZT", got.Items[0].Price.Currency)
}

func TestConvertToBaseAndBack(t *testing.T) {
	conv := NewCurrencyConverter()
	table := testRateTable()
	doc := completedDoc(100, "USD")

	inBase, err := conv.Convert(doc, "KZT", table)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, inBase.Items[0].Price.Amount)
	assert.Equal(t, "KZT", inBase.Items[0].Price.Currency)

	roundTrip, err := conv.Convert(doc, "usd", table)
	require.NoError(t, err)
	assert.Equal(t, 100.0, roundTrip.Items[0].Price.Amount)
	assert.Equal(t, "USD", roundTrip.Items[0].Price.Currency)
}

func TestConvertCrossCurrency(t *testing.T) {
	conv := NewCurrencyConverter()

	got, err := conv.Convert(completedDoc(100, "USD"), "EUR", testRateTable())
	require.NoError(t, err)
	// 100 USD = 45000 KZT = 90 EUR
	assert.Equal(t, 90.0, got.Items[0].Price.Amount)
}

func TestConvertNormalizesQuantity(t *testing.T) {
	conv := NewCurrencyConverter()

	// JPY is quoted per 100 units: 1000 JPY = 1000 * 3.3 KZT
	got, err := conv.Convert(completedDoc(1000, "JPY"), "KZT", testRateTable())
	require.NoError(t, err)
	assert.Equal(t, 3300.0, got.Items[0].Price.Amount)
}

func TestConvertUnsupportedTarget(t *testing.T) {
	conv := NewCurrencyConverter()

	_, err := conv.Convert(completedDoc(100, "USD"), "xxx", testRateTable())
	require.Error(t, err)

	var unsupported *entity.UnsupportedCurrencyError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "XXX", unsupported.Currency)
}

func TestConvertUnsupportedOfferCurrency(t *testing.T) {
	conv := NewCurrencyConverter()

	_, err := conv.Convert(completedDoc(100, "GBP"), "KZT", testRateTable())
	require.Error(t, err)

	var unsupported *entity.UnsupportedCurrencyError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "GBP", unsupported.Currency)
}

func TestConvertSkipsNonCompletedDocuments(t *testing.T) {
	conv := NewCurrencyConverter()
	doc := &entity.SearchResultDocument{SearchID: "s-2", Status: entity.SearchPending}

	got, err := conv.Convert(doc, "USD", testRateTable())
	require.NoError(t, err)
	assert.Same(t, doc, got)
}

func TestConvertDoesNotMutateStoredDocument(t *testing.T) {
	conv := NewCurrencyConverter()
	table := testRateTable()
	doc := completedDoc(100, "USD")

	first, err := conv.Convert(doc, "EUR", table)
	require.NoError(t, err)
	second, err := conv.Convert(doc, "EUR", table)
	require.NoError(t, err)

	assert.Nil(t, doc.Items[0].Price)
	assert.Equal(t, first.Items[0].Price, second.Items[0].Price)
	assert.Equal(t, entity.Pricing{Total: 100, Base: 80, Taxes: 20, Currency: "USD"}, first.Items[0].Pricing)
}
