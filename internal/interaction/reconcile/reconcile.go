// Package reconcile projects apply events into the deduplicated application
// store for one organization's listings, safely re-runnable under retry and
// concurrent execution.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobpulse/internal/application"
	"jobpulse/internal/interaction"
	"jobpulse/internal/interaction/store"
	"jobpulse/internal/platform/metrics"
	"jobpulse/pkg/platform/sentinel"
)

type Listings interface {
	IDsByOrganization(ctx context.Context, orgID string) ([]string, error)
}

type EventSource interface {
	Fetch(ctx context.Context, filter store.Filter) ([]interaction.Event, error)
}

type Applications interface {
	ExistingKeys(ctx context.Context, orgID string) (map[application.Key]struct{}, error)
	Insert(ctx context.Context, app application.Application) error
}

// Result reports one reconciliation run. AlreadyExisted covers both fast-path
// skips and inserts the uniqueness constraint rejected.
type Result struct {
	Materialized   int
	AlreadyExisted int
}

// Reconciler holds no state between runs and takes no locks; the application
// store's uniqueness constraint is the safety mechanism, the existing-key
// read is only an optimization.
type Reconciler struct {
	listings     Listings
	events       EventSource
	applications Applications
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

func New(listings Listings, events EventSource, applications Applications, opts ...Option) *Reconciler {
	r := &Reconciler{listings: listings, events: events, applications: applications}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run materializes missing applications for the organization. Running it
// twice with no new apply events in between inserts nothing the second time.
func (r *Reconciler) Run(ctx context.Context, orgID string) (Result, error) {
	var result Result

	listingIDs, err := r.listings.IDsByOrganization(ctx, orgID)
	if err != nil {
		return result, fmt.Errorf("load organization listings: %w", err)
	}
	if len(listingIDs) == 0 {
		// Nothing to reconcile is a zero result, not a failure.
		if r.logger != nil {
			r.logger.InfoContext(ctx, "reconcile skipped, organization has no listings",
				"organization_id", orgID,
			)
		}
		return result, nil
	}

	events, err := r.events.Fetch(ctx, store.Filter{
		Types:     []interaction.EventType{interaction.TypeApply},
		TargetIDs: listingIDs,
	})
	if err != nil {
		return result, fmt.Errorf("fetch apply events: %w", err)
	}

	existing, err := r.applications.ExistingKeys(ctx, orgID)
	if err != nil {
		return result, fmt.Errorf("load existing application keys: %w", err)
	}

	// Collapse to one event per (job, actor). First seen in batch order
	// wins; events are deliberately not re-sorted, so the guarantee is
	// first-seen-in-batch, not earliest-timestamp.
	type pair struct {
		key   application.Key
		event interaction.Event
	}
	seen := make(map[application.Key]struct{})
	var collapsed []pair
	for _, e := range events {
		if e.ActorID == "" {
			continue
		}
		key := application.Key{JobID: e.TargetID, ActorID: e.ActorID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		collapsed = append(collapsed, pair{key: key, event: e})
	}

	for _, p := range collapsed {
		if _, ok := existing[p.key]; ok {
			result.AlreadyExisted++
			continue
		}

		err := r.applications.Insert(ctx, application.Application{
			JobID:          p.key.JobID,
			ActorID:        p.key.ActorID,
			OrganizationID: orgID,
			Status:         application.StatusPending,
			CreatedAt:      p.event.CreatedAt,
		})
		switch {
		case err == nil:
			result.Materialized++
		case errors.Is(err, sentinel.ErrConflict):
			// A concurrent run won the insert. Benign: the row exists,
			// which is all reconciliation promises.
			result.AlreadyExisted++
			if r.metrics != nil {
				r.metrics.ReconcilerDuplicates.Inc()
			}
		default:
			// Insert failures are isolated per row only for uniqueness
			// conflicts; anything else is a storage fault and fails the run.
			return result, fmt.Errorf("materialize application %s/%s: %w", p.key.JobID, p.key.ActorID, err)
		}
	}

	if r.metrics != nil {
		r.metrics.ReconcilerMaterialized.Add(float64(result.Materialized))
	}
	if r.logger != nil {
		r.logger.InfoContext(ctx, "reconciled organization applications",
			"organization_id", orgID,
			"listings", len(listingIDs),
			"apply_events", len(events),
			"materialized", result.Materialized,
			"already_existed", result.AlreadyExisted,
		)
	}
	return result, nil
}
