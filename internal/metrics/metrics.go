// Package metrics defines Prometheus metrics for the synapse server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "synapse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synapse_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synapse_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ContentIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synapse_content_ingested_total",
			Help: "Content items ingested, by kind",
		},
		[]string{"kind"},
	)

	EnrichmentFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synapse_enrichment_failures_total",
			Help: "Enrichment step failures, by step",
		},
		[]string{"step"},
	)

	EmbedQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "synapse_embed_queue_depth",
			Help: "Current embedding backfill queue depth",
		},
	)

	EmbeddingsBackfilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "synapse_embeddings_backfilled_total",
			Help: "Embeddings stored by the backfill worker",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "synapse_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ContentIngested, EnrichmentFailures,
		EmbedQueueDepth, EmbeddingsBackfilled,
		WSConnections,
	)
}
