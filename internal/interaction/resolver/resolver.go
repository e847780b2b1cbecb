// Package resolver turns batches of interaction events into display-ready
// actor and target descriptions. It issues at most one directory lookup per
// entity collection regardless of batch size, never one per event.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jobpulse/internal/directory"
	"jobpulse/internal/interaction"
	"jobpulse/internal/platform/metrics"
)

type People interface {
	FindByIDs(ctx context.Context, ids []string) ([]directory.Person, error)
}

type Organizations interface {
	FindByIDs(ctx context.Context, ids []string) ([]directory.Organization, error)
}

type Listings interface {
	FindByIDs(ctx context.Context, ids []string) ([]directory.Listing, error)
}

type Media interface {
	FindByIDs(ctx context.Context, ids []string) ([]directory.Media, error)
}

// EntityRef is one resolved side of an event. Kind reports which collection
// the name came from; a dangling reference keeps its declared role and a
// fixed placeholder name.
type EntityRef struct {
	ID   string
	Name string
	Kind interaction.Role
}

// ResolvedEvent decorates an event with resolved identities. Ephemeral:
// recomputed per request, never cached, because the underlying entities can
// be renamed or deleted between events and display time.
type ResolvedEvent struct {
	interaction.Event
	Actor  EntityRef
	Target EntityRef
}

// Resolver batch-resolves event references against the four directories.
type Resolver struct {
	people        People
	organizations Organizations
	listings      Listings
	media         Media
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

func New(people People, organizations Organizations, listings Listings, media Media, opts ...Option) *Resolver {
	r := &Resolver{
		people:        people,
		organizations: organizations,
		listings:      listings,
		media:         media,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve decorates the batch with display names. Output order matches input
// order. A reference with no matching record degrades to a placeholder; only
// a directory fetch failure fails the call.
func (r *Resolver) Resolve(ctx context.Context, events []interaction.Event) ([]ResolvedEvent, error) {
	personIDs := make(map[string]struct{})
	orgIDs := make(map[string]struct{})
	listingIDs := make(map[string]struct{})
	mediaIDs := make(map[string]struct{})

	collect := func(role interaction.Role, id string) {
		if id == "" {
			return
		}
		switch role {
		case interaction.RolePerson:
			personIDs[id] = struct{}{}
		case interaction.RoleOrganization:
			orgIDs[id] = struct{}{}
		case interaction.RoleOrgThenPerson:
			// Both producer patterns exist in the history, so fetch from
			// both collections and prefer the organization at decoration.
			orgIDs[id] = struct{}{}
			personIDs[id] = struct{}{}
		case interaction.RoleListing:
			listingIDs[id] = struct{}{}
		case interaction.RoleMedia:
			mediaIDs[id] = struct{}{}
		}
	}

	for _, e := range events {
		roles := interaction.RolesFor(e.Type)
		collect(roles.Actor, e.ActorID)
		collect(roles.Target, e.TargetID)
	}

	// One batch fetch per non-empty collection, fanned out concurrently and
	// joined before decoration. No partial-result path: a single failed
	// fetch fails the batch.
	var (
		people        map[string]directory.Person
		organizations map[string]directory.Organization
		listings      map[string]directory.Listing
		media         map[string]directory.Media
	)
	g, gctx := errgroup.WithContext(ctx)

	if len(personIDs) > 0 {
		g.Go(func() error {
			records, err := r.people.FindByIDs(gctx, keys(personIDs))
			if err != nil {
				return fmt.Errorf("resolve people: %w", err)
			}
			people = make(map[string]directory.Person, len(records))
			for _, p := range records {
				people[p.ID] = p
			}
			r.countFetch("people")
			return nil
		})
	}
	if len(orgIDs) > 0 {
		g.Go(func() error {
			records, err := r.organizations.FindByIDs(gctx, keys(orgIDs))
			if err != nil {
				return fmt.Errorf("resolve organizations: %w", err)
			}
			organizations = make(map[string]directory.Organization, len(records))
			for _, o := range records {
				organizations[o.ID] = o
			}
			r.countFetch("organizations")
			return nil
		})
	}
	if len(listingIDs) > 0 {
		g.Go(func() error {
			records, err := r.listings.FindByIDs(gctx, keys(listingIDs))
			if err != nil {
				return fmt.Errorf("resolve listings: %w", err)
			}
			listings = make(map[string]directory.Listing, len(records))
			for _, l := range records {
				listings[l.ID] = l
			}
			r.countFetch("listings")
			return nil
		})
	}
	if len(mediaIDs) > 0 {
		g.Go(func() error {
			records, err := r.media.FindByIDs(gctx, keys(mediaIDs))
			if err != nil {
				return fmt.Errorf("resolve media: %w", err)
			}
			media = make(map[string]directory.Media, len(records))
			for _, m := range records {
				media[m.ID] = m
			}
			r.countFetch("media")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := func(role interaction.Role, id string) EntityRef {
		if id == "" {
			return EntityRef{Kind: interaction.RoleNone}
		}
		switch role {
		case interaction.RolePerson:
			if p, ok := people[id]; ok {
				return EntityRef{ID: id, Name: p.Name, Kind: interaction.RolePerson}
			}
		case interaction.RoleOrganization:
			if o, ok := organizations[id]; ok {
				return EntityRef{ID: id, Name: o.Name, Kind: interaction.RoleOrganization}
			}
		case interaction.RoleOrgThenPerson:
			if o, ok := organizations[id]; ok {
				return EntityRef{ID: id, Name: o.Name, Kind: interaction.RoleOrganization}
			}
			if p, ok := people[id]; ok {
				return EntityRef{ID: id, Name: p.Name, Kind: interaction.RolePerson}
			}
			// Resolves in neither expected collection: unknown actor, not
			// an error.
			r.countMiss(role)
			return EntityRef{ID: id, Name: "unknown actor", Kind: interaction.RoleNone}
		case interaction.RoleListing:
			if l, ok := listings[id]; ok {
				return EntityRef{ID: id, Name: l.Title, Kind: interaction.RoleListing}
			}
		case interaction.RoleMedia:
			if m, ok := media[id]; ok {
				return EntityRef{ID: id, Name: m.Title, Kind: interaction.RoleMedia}
			}
		}
		r.countMiss(role)
		return EntityRef{ID: id, Name: role.Placeholder(), Kind: role}
	}

	resolved := make([]ResolvedEvent, len(events))
	for i, e := range events {
		roles := interaction.RolesFor(e.Type)
		resolved[i] = ResolvedEvent{
			Event:  e,
			Actor:  lookup(roles.Actor, e.ActorID),
			Target: lookup(roles.Target, e.TargetID),
		}
	}

	if r.metrics != nil {
		r.metrics.EventsResolved.Add(float64(len(resolved)))
	}
	if r.logger != nil {
		r.logger.DebugContext(ctx, "resolved event batch",
			"events", len(events),
			"people", len(personIDs),
			"organizations", len(orgIDs),
			"listings", len(listingIDs),
			"media", len(mediaIDs),
		)
	}
	return resolved, nil
}

func (r *Resolver) countFetch(collection string) {
	if r.metrics != nil {
		r.metrics.ResolverBatchFetches.WithLabelValues(collection).Inc()
	}
}

func (r *Resolver) countMiss(role interaction.Role) {
	if r.metrics != nil {
		r.metrics.UnresolvedReferences.WithLabelValues(string(role)).Inc()
	}
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
