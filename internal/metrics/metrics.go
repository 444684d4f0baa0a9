package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qboard",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled.",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration observes request latency by route and method.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qboard",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// StoreOperationsTotal counts store calls by driver, operation and outcome.
	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qboard",
		Name:      "store_operations_total",
		Help:      "Question set store operations.",
	}, []string{"driver", "op", "result"})

	// StoreOperationDuration observes store latency by driver and operation.
	StoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qboard",
		Name:      "store_operation_duration_seconds",
		Help:      "Question set store latency.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"driver", "op"})

	// StoredQuestions is the question count after the last successful save or load.
	StoredQuestions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "qboard",
		Name:      "stored_questions",
		Help:      "Number of questions in the stored set.",
	})
)

// Result labels for StoreOperationsTotal.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
