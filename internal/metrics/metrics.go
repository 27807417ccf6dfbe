package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for item requests.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeConflict   = "conflict"
	OutcomeStorageErr = "storage_error"
)

// ItemMetrics holds the Prometheus collectors for the item API.
type ItemMetrics struct {
	ItemsCreated  prometheus.Counter
	Requests      *prometheus.CounterVec
	EventsDropped prometheus.Counter
}

// NewItemMetrics registers the collectors on reg. Tests pass a fresh registry.
func NewItemMetrics(reg prometheus.Registerer) *ItemMetrics {
	factory := promauto.With(reg)
	return &ItemMetrics{
		ItemsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "store_inventory",
			Subsystem: "items",
			Name:      "created_total",
			Help:      "Total number of items created.",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store_inventory",
			Subsystem: "items",
			Name:      "requests_total",
			Help:      "Item operations by operation and outcome.",
		}, []string{"operation", "outcome"}), // operation: list, create
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "store_inventory",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Item events that could not be published.",
		}),
	}
}

func (m *ItemMetrics) Observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, outcome).Inc()
}

func (m *ItemMetrics) ItemCreated() {
	if m == nil {
		return
	}
	m.ItemsCreated.Inc()
}

func (m *ItemMetrics) EventDropped() {
	if m == nil {
		return
	}
	m.EventsDropped.Inc()
}
