package repository

import (
	"context"

	"ticketsearch-service/internal/domain/entity"
)

// TicketProvider is the uniform gateway contract over one upstream ticket
// provider. Wire-format differences stay inside each implementation.
type TicketProvider interface {
	Name() string
	Search(ctx context.Context) ([]entity.SearchResult, error)
	Close()
}
