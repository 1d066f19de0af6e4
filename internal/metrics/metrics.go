package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Outbound message metrics
	MessagesSentTotal *prometheus.CounterVec

	// Record store metrics
	StoreRequestsTotal *prometheus.CounterVec

	// Assistant metrics
	AssistantRequestsTotal  *prometheus.CounterVec
	AssistantDurationSecond prometheus.Histogram
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "zibot_webhook_requests_total",
				Help: "Total number of webhook deliveries by routed branch and status",
			},
			[]string{"branch", "status"}, // branch: admin_update, next_class, my_courses, course_detail, assistant, noop
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zibot_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by routed branch",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"branch"},
		),

		MessagesSentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "zibot_messages_sent_total",
				Help: "Total number of outbound WhatsApp messages by status",
			},
			[]string{"status"}, // status: success, error
		),

		StoreRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "zibot_store_requests_total",
				Help: "Total number of record store operations by operation and status",
			},
			[]string{"operation", "status"}, // operation: get, set
		),

		AssistantRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "zibot_assistant_requests_total",
				Help: "Total number of assistant completion calls by status",
			},
			[]string{"status"},
		),

		AssistantDurationSecond: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "zibot_assistant_duration_seconds",
				Help:    "Assistant completion call duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
	}

	return m
}

// RecordWebhook records a routed webhook delivery
func (m *Metrics) RecordWebhook(branch, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(branch, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(branch).Observe(duration)
}

// RecordMessageSent records an outbound message attempt
func (m *Metrics) RecordMessageSent(status string) {
	m.MessagesSentTotal.WithLabelValues(status).Inc()
}

// RecordStoreRequest records a record store operation
func (m *Metrics) RecordStoreRequest(operation, status string) {
	m.StoreRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordAssistantRequest records an assistant completion call
func (m *Metrics) RecordAssistantRequest(status string, duration float64) {
	m.AssistantRequestsTotal.WithLabelValues(status).Inc()
	m.AssistantDurationSecond.Observe(duration)
}
