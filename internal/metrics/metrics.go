// Package metrics registers the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts completed HTTP requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globalpocket",
		Name:      "http_requests_total",
		Help:      "Completed HTTP requests.",
	}, []string{"method", "status"})

	// TransactionsRecorded counts balance changes committed through the ledger,
	// by transaction type.
	TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globalpocket",
		Name:      "transactions_recorded_total",
		Help:      "Balance changes committed with their paired transaction record.",
	}, []string{"type"})

	// RatePollFailures counts failed polls of the public rate APIs, by source.
	RatePollFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globalpocket",
		Name:      "rate_poll_failures_total",
		Help:      "Failed fetches from the public rate APIs.",
	}, []string{"source"})

	// DemoRequests counts demo request notifications sent.
	DemoRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "globalpocket",
		Name:      "demo_requests_total",
		Help:      "Demo request notifications sent.",
	})
)
