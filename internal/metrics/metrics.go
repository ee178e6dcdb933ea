package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Probe outcomes.
const (
	OutcomeHit     = "hit"
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	probeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valinor_probe_total",
			Help: "Source probes by outcome (cache hit, upstream success, upstream failure)",
		},
		[]string{"source", "outcome"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "valinor_upstream_duration_seconds",
			Help:    "Time spent fetching a source from its upstream API",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"source"},
	)

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valinor_http_requests_total",
			Help: "HTTP requests served by route and status code",
		},
		[]string{"route", "status"},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(probeTotal, upstreamDuration, requestsTotal)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncProbe(source, outcome string) {
	probeTotal.WithLabelValues(source, outcome).Inc()
}

func ObserveUpstream(source string, d time.Duration) {
	upstreamDuration.WithLabelValues(source).Observe(d.Seconds())
}

func IncRequest(route, status string) {
	requestsTotal.WithLabelValues(route, status).Inc()
}
