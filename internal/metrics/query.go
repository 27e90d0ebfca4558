package metrics

import "github.com/prometheus/client_golang/prometheus"

// Complaint query Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crimedex",
			Name:      "queries_total",
			Help:      "Total number of complaint queries",
		},
		[]string{"operation", "status"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crimedex",
			Name:      "query_duration_seconds",
			Help:      "Complaint query duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	QueryFilterClauses = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "crimedex",
			Name:      "query_filter_clauses",
			Help:      "Number of filter clauses per composed query",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	MapPointsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "crimedex",
			Name:      "map_points_returned",
			Help:      "Number of points returned per map query",
			Buckets:   []float64{100, 1000, 5000, 10000, 50000, 100000, 500000},
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryFilterClauses)
	prometheus.MustRegister(MapPointsReturned)
	queryMetricsRegistered = true
}
