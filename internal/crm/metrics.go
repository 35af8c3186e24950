package crm

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce      sync.Once
	upstreamRequests *prometheus.CounterVec
)

func initMetrics() {
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmbridge_upstream_requests_total",
			Help: "Upstream Crelate requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)
	prometheus.MustRegister(upstreamRequests)
}

func observe(resource, outcome string) {
	metricsOnce.Do(initMetrics)
	upstreamRequests.WithLabelValues(resource, outcome).Inc()
}
