package repository

import (
	"context"
	"time"

	"ticketsearch-service/internal/domain/entity"
)

// QueueEntry is one delivered work-queue entry with its raw field map.
// Parsing into a SearchRequest is the consumer's job.
type QueueEntry struct {
	ID     string
	Fields map[string]string
}

// SearchQueueRepository defines the durable work queue for search requests.
// Delivery is at-least-once: entries stay redeliverable until acknowledged.
type SearchQueueRepository interface {
	// EnsureGroup creates the consumer group if missing; it must be
	// idempotent when the group already exists.
	EnsureGroup(ctx context.Context) error
	Enqueue(ctx context.Context, req *entity.SearchRequest) (string, error)
	// ReadPending blocks up to block for new entries and returns an empty
	// slice when none arrive in time.
	ReadPending(ctx context.Context, count int64, block time.Duration) ([]QueueEntry, error)
	Ack(ctx context.Context, entryID string) error
}
