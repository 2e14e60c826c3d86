package reports

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foundit_report_submissions_total",
			Help: "Report submissions by outcome",
		},
		[]string{"outcome"},
	)

	submitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foundit_report_submit_duration_seconds",
			Help:    "End-to-end submit latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

// recordSubmit counts one submission; kind 0 means success
func recordSubmit(kind apperrors.Kind, started time.Time) {
	outcome := "success"
	if kind != 0 {
		outcome = kind.String()
	}
	submissionsTotal.WithLabelValues(outcome).Inc()
	submitDuration.Observe(time.Since(started).Seconds())
}
