// Package metrics exposes Prometheus counters for bot traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "uniassistant"

// Metrics groups the bot counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	updates        *prometheus.CounterVec
	commands       *prometheus.CounterVec
	aiRequests     *prometheus.CounterVec
	notifyFailures prometheus.Counter
	storageErrors  prometheus.Counter
}

// New registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		updates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Inbound updates by kind (message, callback).",
		}, []string{"kind"}),
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Dispatched commands and callbacks by name.",
		}, []string{"command"}),
		aiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Generative service calls by result (ok, error, empty).",
		}, []string{"result"}),
		notifyFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_notify_failures_total",
			Help:      "Administrator notifications that could not be delivered.",
		}),
		storageErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_storage_errors_total",
			Help:      "Failed writes to user or activity storage.",
		}),
	}
}

func (m *Metrics) Update(kind string) {
	if m != nil {
		m.updates.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) Command(name string) {
	if m != nil {
		m.commands.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) AIRequest(result string) {
	if m != nil {
		m.aiRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) NotifyFailure() {
	if m != nil {
		m.notifyFailures.Inc()
	}
}

func (m *Metrics) StorageError() {
	if m != nil {
		m.storageErrors.Inc()
	}
}
