package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsChecked    prometheus.Counter
	ChangesDetected   *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
	CycleDuration     prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsChecked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_checked_total",
			Help:      "The total number of flight status checks performed",
		}),
		ChangesDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_detected_total",
			Help:      "The total number of classified flight changes",
		}, []string{"change_type"}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notification delivery outcomes",
		}, []string{"channel", "status"}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time taken to run one monitoring cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
