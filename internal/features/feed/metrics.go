package feed

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foundit_feed_fetches_total",
			Help: "Recent feed queries by outcome",
		},
		[]string{"outcome"},
	)

	fetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foundit_feed_fetch_duration_seconds",
			Help:    "Recent feed query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func recordFetch(ok bool, started time.Time) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	fetchesTotal.WithLabelValues(outcome).Inc()
	fetchDuration.Observe(time.Since(started).Seconds())
}
