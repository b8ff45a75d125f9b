package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisSearchQueueRepository implements SearchQueueRepository on a redis
// stream with one consumer group
type RedisSearchQueueRepository struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	logger   logger.Logger
}

// NewRedisSearchQueueRepository creates a new search queue repository
func NewRedisSearchQueueRepository(client *redis.Client, stream, group, consumer string, logger logger.Logger) repository.SearchQueueRepository {
	return &RedisSearchQueueRepository{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		logger:   logger,
	}
}

// EnsureGroup creates the consumer group, tolerating an existing one
func (r *RedisSearchQueueRepository) EnsureGroup(ctx context.Context) error {
	err := r.client.XGroupCreateMkStream(ctx, r.stream, r.group, "0-0").Err()
	if err != nil {
		if strings.Contains(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists", "group", r.group)
			return nil
		}
		return fmt.Errorf("failed to create consumer group %s: %w", r.group, err)
	}

	r.logger.Info("Created consumer group", "group", r.group, "stream", r.stream)
	return nil
}

// Enqueue appends a search request to the stream
func (r *RedisSearchQueueRepository) Enqueue(ctx context.Context, req *entity.SearchRequest) (string, error) {
	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{"search_id": req.SearchID},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue search request: %w", err)
	}
	return id, nil
}

// ReadPending reads up to count undelivered entries for this consumer,
// blocking up to block. An empty slice means the stream was idle.
func (r *RedisSearchQueueRepository) ReadPending(ctx context.Context, count int64, block time.Duration) ([]repository.QueueEntry, error) {
	streams, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    r.group,
		Consumer: r.consumer,
		Streams:  []string{r.stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream %s: %w", r.stream, err)
	}

	var entries []repository.QueueEntry
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			fields := make(map[string]string, len(msg.Values))
			for k, v := range msg.Values {
				fields[k] = fmt.Sprint(v)
			}
			entries = append(entries, repository.QueueEntry{ID: msg.ID, Fields: fields})
		}
	}
	return entries, nil
}

// Ack acknowledges a processed entry
func (r *RedisSearchQueueRepository) Ack(ctx context.Context, entryID string) error {
	if err := r.client.XAck(ctx, r.stream, r.group, entryID).Err(); err != nil {
		return fmt.Errorf("failed to ack entry %s: %w", entryID, err)
	}
	return nil
}
