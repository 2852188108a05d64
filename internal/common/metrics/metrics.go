// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_conversation_turns_total",
			Help: "Conversation turns by outcome (classified, unclassified, failed)",
		},
		[]string{"outcome"},
	)

	ExtractionDecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_extraction_decode_failures_total",
			Help: "Classifier outputs that could not be decoded",
		},
	)

	LeadFieldsUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_fields_updated_total",
			Help: "Lead record fields changed by fusion",
		},
		[]string{"field"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_upstream_call_duration_seconds",
			Help:    "Duration of language model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"call", "status"},
	)

	StoreUpdateConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_store_update_conflicts_total",
			Help: "Optimistic transaction retries in the lead store",
		},
		[]string{"backend"},
	)

	Handoffs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_handoffs_total",
			Help: "Handoff attempts by result",
		},
		[]string{"result"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Agent notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)
