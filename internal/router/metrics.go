package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dune_client",
			Name:      "requests_total",
			Help:      "API requests issued, by HTTP method.",
		},
		[]string{"method"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dune_client",
			Name:      "request_failures_total",
			Help:      "API requests that failed at the transport level.",
		},
		[]string{"method"},
	)
)
