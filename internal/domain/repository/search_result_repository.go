package repository

import (
	"context"

	"ticketsearch-service/internal/domain/entity"
)

// SearchResultRepository defines storage for aggregated search documents.
// Put is a whole-document overwrite; there is no partial update.
type SearchResultRepository interface {
	// Get returns entity.ErrResultNotFound for an unknown id and a
	// *entity.CorruptedDocumentError when the stored document fails to decode.
	Get(ctx context.Context, searchID string) (*entity.SearchResultDocument, error)
	Put(ctx context.Context, doc *entity.SearchResultDocument) error
}
