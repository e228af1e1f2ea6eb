package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer collects Prometheus metrics for registry operations.
type Observer struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewObserver creates an observer and registers its collectors with the
// given registerer. Each client should get its own observer; registering
// two observers on the same registerer panics on the duplicate
// collector, as usual with Prometheus.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schema_registry_requests_total",
				Help: "Total number of schema registry requests by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schema_registry_request_duration_seconds",
				Help:    "Duration of schema registry requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(o.requestsTotal, o.requestDuration)
	return o
}

func (o *Observer) observe(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		if IsNotFound(err) {
			status = "not_found"
		}
	}
	o.requestsTotal.WithLabelValues(operation, status).Inc()
	o.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
