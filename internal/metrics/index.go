package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blogdex"

// Lookup outcomes for IndexLookupsTotal.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Article index Prometheus metrics.
var (
	IndexArticles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_articles",
			Help:      "Number of articles in the loaded index",
		},
	)

	IndexTags = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_tags",
			Help:      "Number of distinct tags in the loaded index",
		},
	)

	IndexLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_lookups_total",
			Help:      "Index lookups by operation and outcome",
		},
		[]string{"op", "result"}, // result: "hit" / "miss"
	)

	IndexLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_load_duration_seconds",
			Help:      "Duration of the one-shot article load",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"source", "status"},
	)
)

var registerOnce sync.Once

// Register registers all blogdex collectors with the default registry.
// Safe to call more than once; must be called from main before serving.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(IndexArticles)
		prometheus.MustRegister(IndexTags)
		prometheus.MustRegister(IndexLookupsTotal)
		prometheus.MustRegister(IndexLoadDuration)
	})
}

// ObserveLookup counts one index lookup.
func ObserveLookup(op string, hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	IndexLookupsTotal.WithLabelValues(op, result).Inc()
}
