package github

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	retries  *prometheus.CounterVec
	dropped  prometheus.Counter
}

// newMetrics builds the collector instruments, reg may be nil
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "github",
			Name:      "requests_total",
			Help:      "GitHub API responses by call kind and status code.",
		}, []string{"kind", "code"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streaks",
			Subsystem: "github",
			Name:      "request_duration_seconds",
			Help:      "GitHub API round trip latency.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9),
		}, []string{"kind"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "github",
			Name:      "retries_total",
			Help:      "GitHub API retries by call kind and reason.",
		}, []string{"kind", "reason"}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "github",
			Name:      "malformed_days_total",
			Help:      "Calendar days skipped because upstream sent no usable count.",
		}),
	}
}
