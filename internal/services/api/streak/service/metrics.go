package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	lookups *prometheus.CounterVec
	stops   *prometheus.CounterVec
	years   prometheus.Histogram
	badges  *prometheus.CounterVec
}

// newMetrics builds the streak instruments, reg may be nil
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "streak",
			Name:      "lookups_total",
			Help:      "Streak computations by outcome.",
		}, []string{"outcome"}),
		stops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "streak",
			Name:      "history_stops_total",
			Help:      "Why history assembly stopped walking back.",
		}, []string{"reason"}),
		years: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streaks",
			Subsystem: "streak",
			Name:      "history_years",
			Help:      "Calendar years fetched per computation.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		badges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streaks",
			Subsystem: "streak",
			Name:      "badges_rendered_total",
			Help:      "User badges rendered by current tier.",
		}, []string{"tier"}),
	}
}
