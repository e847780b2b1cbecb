// Package service composes the event store, resolver, aggregator and
// reconciler into the operations consumed by the admin and company surfaces.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobpulse/internal/interaction"
	"jobpulse/internal/interaction/aggregate"
	"jobpulse/internal/interaction/reconcile"
	"jobpulse/internal/interaction/resolver"
	"jobpulse/internal/interaction/store"
	"jobpulse/internal/platform/metrics"
	dErrors "jobpulse/pkg/domain-errors"
	"jobpulse/pkg/platform/sentinel"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type EventStore interface {
	Fetch(ctx context.Context, filter store.Filter) ([]interaction.Event, error)
	Append(ctx context.Context, event interaction.Event) error
	DeleteToggles(ctx context.Context, targetID string, typ interaction.EventType) (int64, error)
	FindToggle(ctx context.Context, targetID string, typ interaction.EventType) (interaction.Event, error)
	UpdateToggleMetadata(ctx context.Context, eventID uuid.UUID, metadata map[string]string) error
}

type Resolver interface {
	Resolve(ctx context.Context, events []interaction.Event) ([]resolver.ResolvedEvent, error)
}

type Listings interface {
	IDsByOrganization(ctx context.Context, orgID string) ([]string, error)
}

type Reconciler interface {
	Run(ctx context.Context, orgID string) (reconcile.Result, error)
}

// Service is stateless across requests; every operation recomputes from the
// log so read models are always consistent with it.
type Service struct {
	events     EventStore
	resolver   Resolver
	listings   Listings
	reconciler Reconciler
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(events EventStore, res Resolver, listings Listings, reconciler Reconciler, opts ...Option) *Service {
	s := &Service{events: events, resolver: res, listings: listings, reconciler: reconciler}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecentActivity returns the newest events, resolved for display.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]resolver.ResolvedEvent, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	events, err := s.events.Fetch(ctx, store.Filter{Limit: limit})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load recent activity")
	}
	resolved, err := s.resolver.Resolve(ctx, events)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to resolve recent activity")
	}
	return resolved, nil
}

// Query narrows an audit fetch. Type strings are passed through unparsed so
// the audit view can filter on event kinds this engine does not know about.
type Query struct {
	From  time.Time
	To    time.Time
	Types []string
	Limit int
}

// AuditQuery returns filtered events with resolved identities alongside the
// raw type, for the admin audit view.
func (s *Service) AuditQuery(ctx context.Context, q Query) ([]resolver.ResolvedEvent, error) {
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return nil, dErrors.New(dErrors.CodeValidation, "query range end precedes start")
	}
	if q.Limit <= 0 || q.Limit > maxFeedLimit {
		q.Limit = maxFeedLimit
	}

	filter := store.Filter{From: q.From, To: q.To, Limit: q.Limit}
	for _, t := range q.Types {
		if t = strings.TrimSpace(t); t != "" {
			filter.Types = append(filter.Types, interaction.EventType(t))
		}
	}

	events, err := s.events.Fetch(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to query interactions")
	}
	resolved, err := s.resolver.Resolve(ctx, events)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to resolve interactions")
	}
	return resolved, nil
}

// ApplicationCounts returns raw apply-event counts per listing for the
// organization. This mirrors event volume: repeated applies from one actor
// all count, unlike the deduplicated materialized view.
func (s *Service) ApplicationCounts(ctx context.Context, orgID string) (map[string]int, error) {
	if orgID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "organization id is required")
	}

	listingIDs, err := s.listings.IDsByOrganization(ctx, orgID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load organization listings")
	}
	if len(listingIDs) == 0 {
		return map[string]int{}, nil
	}

	events, err := s.events.Fetch(ctx, store.Filter{
		Types:     []interaction.EventType{interaction.TypeApply},
		TargetIDs: listingIDs,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load apply events")
	}
	return aggregate.CountByTarget(events, interaction.TypeApply), nil
}

// ApplicationFlags returns the favorite/memo toggle state for one
// application record.
func (s *Service) ApplicationFlags(ctx context.Context, targetID string) (aggregate.State, error) {
	if targetID == "" {
		return aggregate.State{}, dErrors.New(dErrors.CodeValidation, "target id is required")
	}

	events, err := s.events.Fetch(ctx, store.Filter{
		Types:     []interaction.EventType{interaction.TypeCompanyFavoriteApp, interaction.TypeCompanyMemoApp},
		TargetIDs: []string{targetID},
	})
	if err != nil {
		return aggregate.State{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load toggle events")
	}
	return aggregate.ToggleState(events, targetID), nil
}

// SetFavorite turns the favorite toggle on or off. Turning on is
// delete-then-insert rather than upsert so pre-existing duplicate rows are
// cleared instead of multiplied; turning off always clears all matches.
func (s *Service) SetFavorite(ctx context.Context, targetID, actorID string, on bool) error {
	if targetID == "" || actorID == "" {
		return dErrors.New(dErrors.CodeValidation, "target and actor ids are required")
	}

	cleared, err := s.events.DeleteToggles(ctx, targetID, interaction.TypeCompanyFavoriteApp)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to clear favorite")
	}

	if on {
		err := s.events.Append(ctx, interaction.Event{
			ID:        uuid.New(),
			ActorID:   actorID,
			Type:      interaction.TypeCompanyFavoriteApp,
			TargetID:  targetID,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to set favorite")
		}
	}

	s.countToggle(interaction.TypeCompanyFavoriteApp)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "favorite toggled",
			"target_id", targetID,
			"actor_id", actorID,
			"on", on,
			"cleared", cleared,
		)
	}
	return nil
}

// UpsertMemo updates the memo toggle for the target in place, creating it if
// absent. The key is the target alone, not (target, actor): when several
// organization users edit the same application's memo, the last write wins.
func (s *Service) UpsertMemo(ctx context.Context, targetID, actorID, content string) error {
	if targetID == "" || actorID == "" {
		return dErrors.New(dErrors.CodeValidation, "target and actor ids are required")
	}

	existing, err := s.events.FindToggle(ctx, targetID, interaction.TypeCompanyMemoApp)
	switch {
	case err == nil:
		err = s.events.UpdateToggleMetadata(ctx, existing.ID, map[string]string{
			interaction.MetadataContentKey: content,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to update memo")
		}
	case errors.Is(err, sentinel.ErrNotFound):
		err = s.events.Append(ctx, interaction.Event{
			ID:        uuid.New(),
			ActorID:   actorID,
			Type:      interaction.TypeCompanyMemoApp,
			TargetID:  targetID,
			Metadata:  map[string]string{interaction.MetadataContentKey: content},
			CreatedAt: time.Now(),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create memo")
		}
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to look up memo")
	}

	s.countToggle(interaction.TypeCompanyMemoApp)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "memo upserted",
			"target_id", targetID,
			"actor_id", actorID,
		)
	}
	return nil
}

// Reconcile materializes missing application rows for the organization and
// reports how many were newly created.
func (s *Service) Reconcile(ctx context.Context, orgID string) (reconcile.Result, error) {
	if orgID == "" {
		return reconcile.Result{}, dErrors.New(dErrors.CodeValidation, "organization id is required")
	}

	result, err := s.reconciler.Run(ctx, orgID)
	if err != nil {
		return result, dErrors.Wrap(err, dErrors.CodeUnavailable, "reconciliation failed")
	}
	return result, nil
}

func (s *Service) countToggle(typ interaction.EventType) {
	if s.metrics != nil {
		s.metrics.TogglesWritten.WithLabelValues(string(typ)).Inc()
	}
}
