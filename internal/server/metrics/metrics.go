// Package metrics holds the daybookd Prometheus collectors. They register
// with the default registry and are exposed by the HTTP /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "daybook"

var (
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "gRPC calls by method and status code.",
		},
		[]string{"method", "code"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "gRPC handler latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "code"},
	)

	EntriesInsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_inserted_total",
			Help:      "Entries stored, split by whether a day number was assigned.",
		},
		[]string{"with_day"},
	)

	EntriesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_deleted_total",
			Help:      "Entries removed.",
		},
	)

	AssetOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_operations_total",
			Help:      "Object storage operations by kind and bucket.",
		},
		[]string{"op", "bucket"},
	)
)
