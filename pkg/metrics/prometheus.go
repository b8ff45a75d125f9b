package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesProcessed prometheus.Counter
	SearchesEnqueued  prometheus.Counter
	OffersCollected   prometheus.Counter
	ProcessingTime    prometheus.Histogram
	ProviderErrors    *prometheus.CounterVec
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_processed_total",
			Help:      "The total number of processed search requests",
		}),
		SearchesEnqueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_enqueued_total",
			Help:      "The total number of search requests published to the queue",
		}),
		OffersCollected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_collected_total",
			Help:      "The total number of offers collected from providers",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_processing_time_seconds",
			Help:      "Time taken to process one search request",
			Buckets:   prometheus.DefBuckets,
		}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "The total number of provider fetch failures",
		}, []string{"provider"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
