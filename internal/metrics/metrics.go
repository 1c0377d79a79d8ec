package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts API requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// WebhookDeliveries counts delivery attempts by event type and outcome
	// (delivered, retrying, failed, skipped).
	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_deliveries_total", Help: "Webhook delivery attempts by event type and outcome."},
		[]string{"event", "outcome"},
	)
	// WebhookDuration tracks the HTTP round trip of each attempt
	WebhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "webhook_delivery_duration_seconds", Help: "Webhook delivery duration in seconds.", Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}},
		[]string{"event", "outcome"},
	)
	// EventsDispatched counts deliveries enqueued per event type
	EventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_events_dispatched_total", Help: "Deliveries enqueued by event type."},
		[]string{"event"},
	)
	// EndpointsAutoDisabled counts endpoints deactivated after repeated failures
	EndpointsAutoDisabled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "webhook_endpoints_auto_disabled_total", Help: "Endpoints disabled by the failure threshold."},
	)
	// SchedulerRuns counts scheduler task executions by result (ok, error, skipped)
	SchedulerRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_scheduler_runs_total", Help: "Scheduler task runs by task and result."},
		[]string{"task", "result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(WebhookDeliveries)
		Registry.MustRegister(WebhookDuration)
		Registry.MustRegister(EventsDispatched)
		Registry.MustRegister(EndpointsAutoDisabled)
		Registry.MustRegister(SchedulerRuns)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
