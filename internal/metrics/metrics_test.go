package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAllMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	require.NotNil(t, m)

	m.RecordWebhook("next_class", "success", 0.05)
	m.RecordMessageSent("success")
	m.RecordStoreRequest("get", "success")
	m.RecordAssistantRequest("success", 1.2)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}

	assert.True(t, names["zibot_webhook_requests_total"])
	assert.True(t, names["zibot_webhook_duration_seconds"])
	assert.True(t, names["zibot_messages_sent_total"])
	assert.True(t, names["zibot_store_requests_total"])
	assert.True(t, names["zibot_assistant_requests_total"])
	assert.True(t, names["zibot_assistant_duration_seconds"])
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordWebhook("assistant", "success", 0.2)
	m.RecordWebhook("assistant", "success", 0.3)
	m.RecordWebhook("assistant", "error", 0.1)
	m.RecordWebhook("noop", "success", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("assistant", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("assistant", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("noop", "success")))

	m.RecordMessageSent("success")
	m.RecordMessageSent("error")
	m.RecordMessageSent("error")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.MessagesSentTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MessagesSentTotal.WithLabelValues("error")))

	m.RecordStoreRequest("set", "error")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreRequestsTotal.WithLabelValues("set", "error")))

	m.RecordAssistantRequest("success", 0.8)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AssistantRequestsTotal.WithLabelValues("success")))
}
