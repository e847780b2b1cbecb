package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the interaction engine.
type Metrics struct {
	ResolverBatchFetches   *prometheus.CounterVec
	EventsResolved         prometheus.Counter
	UnresolvedReferences   *prometheus.CounterVec
	ReconcilerMaterialized prometheus.Counter
	ReconcilerDuplicates   prometheus.Counter
	IntakeEventsAppended   prometheus.Counter
	TogglesWritten         *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ResolverBatchFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobpulse_resolver_batch_fetches_total",
			Help: "Batch directory fetches issued by the entity resolver, per collection",
		}, []string{"collection"}),
		EventsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobpulse_events_resolved_total",
			Help: "Interaction events decorated with resolved identities",
		}),
		UnresolvedReferences: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobpulse_unresolved_references_total",
			Help: "References that fell back to a placeholder, per role",
		}, []string{"role"}),
		ReconcilerMaterialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobpulse_reconciler_materialized_total",
			Help: "Application rows materialized by reconciliation runs",
		}),
		ReconcilerDuplicates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobpulse_reconciler_duplicates_total",
			Help: "Reconciliation inserts skipped because the row already existed",
		}),
		IntakeEventsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobpulse_intake_events_appended_total",
			Help: "Interaction events appended by the Kafka intake worker",
		}),
		TogglesWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobpulse_toggles_written_total",
			Help: "Toggle mutations applied, per toggle type",
		}, []string{"type"}),
	}
}
