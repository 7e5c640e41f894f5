package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Provider attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var (
	// ProviderAttempts counts every candidate visited by the fallback chain.
	ProviderAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imagerelay",
		Name:      "provider_attempts_total",
		Help:      "Provider attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	// ProviderLatency observes the duration of provider HTTP calls.
	ProviderLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "imagerelay",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of provider calls.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"provider"})

	// ImagesGenerated counts image references returned to clients.
	ImagesGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imagerelay",
		Name:      "images_generated_total",
		Help:      "Image references returned, by provider.",
	}, []string{"provider"})

	// HTTPRequests counts inbound requests by route and status code.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imagerelay",
		Name:      "http_requests_total",
		Help:      "Inbound HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes inbound request latency.
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "imagerelay",
		Name:      "http_request_duration_seconds",
		Help:      "Inbound HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Register adds the relay collectors and the Go/process collectors to reg.
// Collectors that are already registered are ignored.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		ProviderAttempts,
		ProviderLatency,
		ImagesGenerated,
		HTTPRequests,
		HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
