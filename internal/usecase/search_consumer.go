package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"
	"ticketsearch-service/pkg/logger"
	"ticketsearch-service/pkg/metrics"
)

// SearchConsumerOptions tunes the poll loop
type SearchConsumerOptions struct {
	PollTimeout time.Duration
	IdleSleep   time.Duration
	// Backoff applied after a queue-level failure before polling again
	ConsumeBackoff time.Duration
}

// SearchConsumer is the single logical consumer of the search work queue.
// For each entry it writes a pending document, fans out to both providers,
// writes the terminal document and only then acknowledges the entry.
type SearchConsumer struct {
	queue      repository.SearchQueueRepository
	resultRepo repository.SearchResultRepository
	alpha      repository.TicketProvider
	betta      repository.TicketProvider
	metrics    *metrics.Metrics
	logger     logger.Logger
	opts       SearchConsumerOptions

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewSearchConsumer creates a new search consumer
func NewSearchConsumer(
	queue repository.SearchQueueRepository,
	resultRepo repository.SearchResultRepository,
	alpha repository.TicketProvider,
	betta repository.TicketProvider,
	m *metrics.Metrics,
	logger logger.Logger,
	opts SearchConsumerOptions,
) *SearchConsumer {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = time.Second
	}
	if opts.IdleSleep <= 0 {
		opts.IdleSleep = 100 * time.Millisecond
	}
	if opts.ConsumeBackoff <= 0 {
		opts.ConsumeBackoff = time.Second
	}
	return &SearchConsumer{
		queue:      queue,
		resultRepo: resultRepo,
		alpha:      alpha,
		betta:      betta,
		metrics:    m,
		logger:     logger,
		opts:       opts,
		stopCh:     make(chan struct{}),
	}
}

// Start runs the poll loop until the context is cancelled or Stop is
// called. A queue-level failure backs off and retries; it never exits the
// loop.
func (c *SearchConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting search request consumer")

	if err := c.queue.EnsureGroup(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Search request consumer stopped")
			return nil
		case <-c.stopCh:
			c.logger.Info("Search request consumer stopped")
			return nil
		default:
		}

		entries, err := c.queue.ReadPending(ctx, 1, c.opts.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Error("Error while reading search requests", "error", err)
			c.metrics.ErrorsCount.WithLabelValues("queue_read").Inc()
			c.sleep(ctx, c.opts.ConsumeBackoff)
			continue
		}

		if len(entries) == 0 {
			c.sleep(ctx, c.opts.IdleSleep)
			continue
		}

		for _, entry := range entries {
			c.handleEntry(ctx, entry)
		}
	}
}

// Stop requests the loop to halt after the current iteration
func (c *SearchConsumer) Stop() {
	c.stopOnce.Do(func() {
		c.logger.Info("Stop requested for search request consumer")
		close(c.stopCh)
	})
}

// handleEntry runs the processing protocol for one dequeued entry. The
// entry is acknowledged only after the terminal write succeeds; any earlier
// failure leaves it redeliverable.
func (c *SearchConsumer) handleEntry(ctx context.Context, entry repository.QueueEntry) {
	started := time.Now()

	searchID := entry.Fields["search_id"]
	if searchID == "" {
		err := &entity.MalformedEntryError{EntryID: entry.ID, Err: fmt.Errorf("missing search_id field")}
		c.logger.Error("Failed to parse queue entry", "error", err)
		c.metrics.ErrorsCount.WithLabelValues("parse_entry").Inc()
		return
	}

	log := c.logger.With("searchId", searchID)
	log.Info("Processing search request", "entryId", entry.ID)

	doc := &entity.SearchResultDocument{
		SearchID: searchID,
		Status:   entity.SearchPending,
	}
	if err := c.resultRepo.Put(ctx, doc); err != nil {
		log.Error("Failed to write pending document", "error", err)
		c.metrics.ErrorsCount.WithLabelValues("result_write").Inc()
		return
	}

	// Both calls run concurrently; the buffered slots keep the merge order
	// fixed to alpha before betta no matter which finishes first.
	providers := []repository.TicketProvider{c.alpha, c.betta}
	offers := make([][]entity.SearchResult, len(providers))
	errs := make([]error, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p repository.TicketProvider) {
			defer wg.Done()
			offers[i], errs[i] = p.Search(ctx)
		}(i, p)
	}
	wg.Wait()

	var failed []string
	for i, p := range providers {
		if errs[i] != nil {
			log.Error("Provider search failed", "provider", p.Name(), "error", errs[i])
			c.metrics.ProviderErrors.WithLabelValues(p.Name()).Inc()
			failed = append(failed, p.Name())
			continue
		}
		doc.Items = append(doc.Items, offers[i]...)
		log.Info("Collected offers", "provider", p.Name(), "count", len(offers[i]))
	}

	if len(failed) == len(providers) {
		doc.Status = entity.SearchError
		doc.Message = fmt.Sprintf("all providers failed: %s", strings.Join(failed, ", "))
	} else {
		doc.Status = entity.SearchCompleted
		if len(failed) > 0 {
			doc.Message = fmt.Sprintf("provider %s failed, results are partial", strings.Join(failed, ", "))
		}
	}

	if err := c.resultRepo.Put(ctx, doc); err != nil {
		log.Error("Failed to write terminal document", "error", err)
		c.metrics.ErrorsCount.WithLabelValues("result_write").Inc()
		return
	}
	log.Info("Stored search results", "status", doc.Status, "items", len(doc.Items))

	if err := c.queue.Ack(ctx, entry.ID); err != nil {
		log.Error("Failed to acknowledge entry", "entryId", entry.ID, "error", err)
		c.metrics.ErrorsCount.WithLabelValues("queue_ack").Inc()
		return
	}
	log.Debug("Acknowledged entry", "entryId", entry.ID)

	c.metrics.SearchesProcessed.Inc()
	c.metrics.OffersCollected.Add(float64(len(doc.Items)))
	c.metrics.ProcessingTime.Observe(time.Since(started).Seconds())
}

// sleep waits for d unless shutdown is requested first
func (c *SearchConsumer) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-c.stopCh:
	case <-t.C:
	}
}
