// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shutils"

var (
	// Registry is the registry every collector below is registered with.
	Registry = prometheus.NewRegistry()

	// CounterOperations counts counter operations by kind and outcome.
	CounterOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "counter_operations_total",
		Help:      "Counter operations by kind and result.",
	}, []string{"op", "result"})

	// StoreDuration observes store operation latency.
	StoreDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"op"})

	// StoreErrors counts failed store operations.
	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Store operations that returned an error.",
	}, []string{"op"})

	// ShiniesFound counts shinies recorded from a counter.
	ShiniesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shinies_found_total",
		Help:      "Shinies recorded through a counter.",
	})

	// HuntsLoaded reports the number of hunts held in memory.
	HuntsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hunts_loaded",
		Help:      "Hunts currently held by the tracker.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		CounterOperations,
		StoreDuration,
		StoreErrors,
		ShiniesFound,
		HuntsLoaded,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveStore records the duration and outcome of a store operation. It is
// meant to be deferred with a pointer to the named error result.
func ObserveStore(op string, start time.Time, err *error) {
	StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && *err != nil {
		StoreErrors.WithLabelValues(op).Inc()
	}
}

// ObserveCounter records a counter operation outcome.
func ObserveCounter(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CounterOperations.WithLabelValues(op, result).Inc()
}
