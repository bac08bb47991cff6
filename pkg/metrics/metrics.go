package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FetchesTotal     *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	ExtractionsTotal *prometheus.CounterVec

	ChunksUpsertedTotal prometheus.Counter
	ArticlesStoredTotal prometheus.Counter
	MemoryGatePauses    prometheus.Counter
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetches_total",
			Help: "Total number of page fetch attempts.",
		},
		[]string{"kind", "status"}, // kind: listing, article; status: success, failure
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Duration of page fetches, including per-page processing.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
		[]string{"kind"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_extractions_total",
			Help: "Total number of LLM structured-extraction attempts.",
		},
		[]string{"status"}, // success, malformed, no_data, error
	)

	ChunksUpsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chunks_upserted_total",
			Help: "Total number of content chunks upserted into the store.",
		},
	)

	ArticlesStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_stored_total",
			Help: "Total number of articles fully persisted.",
		},
	)

	MemoryGatePauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memory_gate_pauses_total",
			Help: "Times the memory-pressure gate paused fetch admissions.",
		},
	)
}
