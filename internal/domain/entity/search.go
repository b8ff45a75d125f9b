// internal/domain/entity/search.go
package entity

import (
	"time"
)

// SearchStatus defines the lifecycle state of a search
type SearchStatus string

const (
	SearchPending   SearchStatus = "pending"
	SearchCompleted SearchStatus = "completed"
	SearchError     SearchStatus = "error"
)

// IsTerminal reports whether the status allows no further automatic transition
func (s SearchStatus) IsTerminal() bool {
	return s == SearchCompleted || s == SearchError
}

// SearchRequest is the queue entry that triggers one search run
type SearchRequest struct {
	SearchID string `json:"search_id"`
}

// SearchResultDocument is the aggregation state persisted per search id
type SearchResultDocument struct {
	SearchID string         `json:"search_id" bson:"_id"`
	Status   SearchStatus   `json:"status" bson:"status"`
	Message  string         `json:"message,omitempty" bson:"message,omitempty"`
	Items    []SearchResult `json:"items,omitempty" bson:"items,omitempty"`
}

// SearchResult is one priced itinerary returned by a provider
type SearchResult struct {
	Flights           []Flight `json:"flights" bson:"flights"`
	Refundable        bool     `json:"refundable" bson:"refundable"`
	ValidatingAirline string   `json:"validating_airline" bson:"validatingAirline"`
	Pricing           Pricing  `json:"pricing" bson:"pricing"`
	// Price is the display amount in the requested currency. It is attached
	// on read and never written back to the store.
	Price *Price `json:"price,omitempty" bson:"-"`
}

type Flight struct {
	Duration int       `json:"duration" bson:"duration"`
	Segments []Segment `json:"segments" bson:"segments"`
}

type Segment struct {
	OperatingAirline string      `json:"operating_airline" bson:"operatingAirline"`
	MarketingAirline string      `json:"marketing_airline" bson:"marketingAirline"`
	FlightNumber     string      `json:"flight_number" bson:"flightNumber"`
	Equipment        string      `json:"equipment,omitempty" bson:"equipment,omitempty"`
	Dep              AirportInfo `json:"dep" bson:"dep"`
	Arr              AirportInfo `json:"arr" bson:"arr"`
	Baggage          string      `json:"baggage,omitempty" bson:"baggage,omitempty"`
}

type AirportInfo struct {
	At      time.Time `json:"at" bson:"at"`
	Airport string    `json:"airport" bson:"airport"`
}

// Pricing holds the provider-quoted amounts. Total is the amount actually
// charged in Currency and is never renormalized.
type Pricing struct {
	Total    float64 `json:"total" bson:"total"`
	Base     float64 `json:"base" bson:"base"`
	Taxes    float64 `json:"taxes" bson:"taxes"`
	Currency string  `json:"currency" bson:"currency"`
}

// Price is a converted, display-facing amount
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
