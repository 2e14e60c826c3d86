package media

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foundit_image_uploads_total",
			Help: "Object store commits attempted by the upload pipeline",
		},
		[]string{"status"},
	)

	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foundit_image_upload_duration_seconds",
			Help:    "Object store commit latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

func recordUpload(success bool, d time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	uploadsTotal.WithLabelValues(status).Inc()
	uploadDuration.Observe(d.Seconds())
}
