// internal/domain/entity/errors.go
package entity

import (
	"errors"
	"fmt"
)

// ErrResultNotFound is returned when no document exists for a search id
var ErrResultNotFound = errors.New("search result not found")

// ErrNoRates is returned when no exchange rate snapshot has been stored yet
var ErrNoRates = errors.New("exchange rate snapshot not available")

// CorruptedDocumentError marks a stored document that no longer parses
// into the expected shape. Distinct from a missing document.
type CorruptedDocumentError struct {
	SearchID string
	Err      error
}

func (e *CorruptedDocumentError) Error() string {
	return fmt.Sprintf("corrupted search result document %s: %v", e.SearchID, e.Err)
}

func (e *CorruptedDocumentError) Unwrap() error { return e.Err }

// UnsupportedCurrencyError names a currency code that cannot be resolved
// against the rate table
type UnsupportedCurrencyError struct {
	Currency string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency: %s", e.Currency)
}

// ProviderError scopes a failure to a single ticket provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedEntryError marks a queue entry that cannot be parsed into a
// SearchRequest. Such entries are logged and left unacknowledged.
type MalformedEntryError struct {
	EntryID string
	Err     error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed queue entry %s: %v", e.EntryID, e.Err)
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }
