package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenwave_queries_enqueued_total",
		Help: "Total number of route queries placed on the processing queue.",
	})

	QueriesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenwave_queries_processed_total",
		Help: "Total number of route queries fully processed by the engine.",
	})

	QueriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenwave_queries_dropped_total",
		Help: "Total number of route queries rejected due to a full queue.",
	})

	QueriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenwave_queries_failed_total",
		Help: "Total number of route queries that ended in an error or timeout.",
	})

	RoutesUnreachable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenwave_routes_unreachable_total",
		Help: "Total number of queries whose destination was unreachable.",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenwave_route_cache_lookups_total",
		Help: "Route cache lookups, labelled by result (hit or miss).",
	}, []string{"result"})

	NetworkReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenwave_network_reloads_total",
		Help: "Network rebuilds, labelled by outcome.",
	}, []string{"outcome"})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "greenwave_query_duration_ms",
		Help:    "End-to-end route query latency in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "greenwave_queue_utilization_ratio",
		Help: "Current query queue utilization (0–1).",
	})

	NetworkNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "greenwave_network_nodes",
		Help: "Intersections in the active road network.",
	})

	NetworkSegments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "greenwave_network_segments",
		Help: "Road segments in the active road network.",
	})
)
