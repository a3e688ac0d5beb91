package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vantagepoint"

var (
	registry = prometheus.NewRegistry()

	fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_total",
		Help:      "Source fetch attempts by outcome (ok, empty, rate_limited, error)",
	}, []string{"source", "outcome"})

	fetchEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_events_total",
		Help:      "Normalized events returned by source fetchers",
	}, []string{"source"})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Result cache lookups by result (hit, miss)",
	}, []string{"source", "result"})

	cacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Explicit refresh actions",
	})

	aiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Generative AI requests by operation and outcome",
	}, []string{"operation", "outcome"})

	acquisitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "acquisitions_total",
		Help:      "Live acquisitions by the source that produced the result (none when all were empty)",
	}, []string{"source"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		fetchTotal,
		fetchEvents,
		cacheLookups,
		cacheInvalidations,
		aiRequests,
		acquisitions,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

func ObserveFetch(source, outcome string, events int) {
	fetchTotal.WithLabelValues(source, outcome).Inc()
	if events > 0 {
		fetchEvents.WithLabelValues(source).Add(float64(events))
	}
}

func ObserveCacheLookup(source string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(source, result).Inc()
}

func ObserveInvalidation() {
	cacheInvalidations.Inc()
}

func ObserveAI(operation, outcome string) {
	aiRequests.WithLabelValues(operation, outcome).Inc()
}

func ObserveAcquisition(source string) {
	if source == "" {
		source = "none"
	}
	acquisitions.WithLabelValues(source).Inc()
}
