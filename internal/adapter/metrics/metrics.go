package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the highscores service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GamesCreated        prometheus.Counter
	GamesDeleted        prometheus.Counter
	ScoresSubmitted     prometheus.Counter
	ScoresDeleted       prometheus.Counter
}

// New initializes and registers the Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "highscores",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "highscores",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		GamesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "highscores",
			Subsystem: "registry",
			Name:      "games_created_total",
			Help:      "Total number of games registered.",
		}),
		GamesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "highscores",
			Subsystem: "registry",
			Name:      "games_deleted_total",
			Help:      "Total number of games deleted.",
		}),
		ScoresSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "highscores",
			Subsystem: "ledger",
			Name:      "scores_submitted_total",
			Help:      "Total number of highscores submitted.",
		}),
		ScoresDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "highscores",
			Subsystem: "ledger",
			Name:      "scores_deleted_total",
			Help:      "Total number of highscores removed by reset or cascade.",
		}),
	}
}
