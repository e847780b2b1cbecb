package reconcile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"jobpulse/internal/application"
	"jobpulse/internal/directory"
	"jobpulse/internal/interaction"
	"jobpulse/internal/interaction/store"
)

type ReconcilerSuite struct {
	suite.Suite
	listings     *directory.MemoryListings
	events       *store.Memory
	applications *application.Memory
	reconciler   *Reconciler
	ctx          context.Context
	base         time.Time
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.listings = directory.NewMemoryListings(
		directory.Listing{ID: "j1", Title: "Backend Engineer", OrganizationID: "org1"},
		directory.Listing{ID: "j2", Title: "Designer", OrganizationID: "org1"},
		directory.Listing{ID: "j9", Title: "Foreign Listing", OrganizationID: "org2"},
	)
	s.events = store.NewMemory()
	s.applications = application.NewMemory()
	s.reconciler = New(s.listings, s.events, s.applications,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.ctx = context.Background()
	s.base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *ReconcilerSuite) apply(actor, target string, offset time.Duration) {
	s.Require().NoError(s.events.Append(s.ctx, interaction.Event{
		ID:        uuid.New(),
		ActorID:   actor,
		Type:      interaction.TypeApply,
		TargetID:  target,
		CreatedAt: s.base.Add(offset),
	}))
}

func (s *ReconcilerSuite) TestMaterializesNewApplications() {
	s.apply("u1", "j1", 0)
	s.apply("u2", "j1", time.Minute)
	s.apply("u1", "j2", 2*time.Minute)

	result, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)
	s.Equal(3, result.Materialized)
	s.Equal(0, result.AlreadyExisted)

	apps, err := s.applications.ListByOrganization(s.ctx, "org1")
	s.Require().NoError(err)
	s.Len(apps, 3)
	for _, app := range apps {
		s.Equal(application.StatusPending, app.Status)
		s.Equal("org1", app.OrganizationID)
	}
}

// TestDuplicateApplyClicks covers the double-submit case: two apply events
// for the same pair materialize exactly one application row.
func (s *ReconcilerSuite) TestDuplicateApplyClicks() {
	s.apply("u1", "j1", 0)
	s.apply("u1", "j1", time.Second)

	result, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)
	s.Equal(1, result.Materialized)

	apps, err := s.applications.ListByOrganization(s.ctx, "org1")
	s.Require().NoError(err)
	s.Len(apps, 1)
}

func (s *ReconcilerSuite) TestSecondRunIsIdempotent() {
	s.apply("u1", "j1", 0)
	s.apply("u2", "j2", time.Minute)

	first, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)
	s.Equal(2, first.Materialized)

	second, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)
	s.Equal(0, second.Materialized)
	s.Equal(2, second.AlreadyExisted)

	apps, err := s.applications.ListByOrganization(s.ctx, "org1")
	s.Require().NoError(err)
	s.Len(apps, 2)
}

func (s *ReconcilerSuite) TestZeroListingsIsZeroResult() {
	result, err := s.reconciler.Run(s.ctx, "org-empty")
	s.Require().NoError(err)
	s.Equal(Result{}, result)
}

func (s *ReconcilerSuite) TestForeignListingsIgnored() {
	s.apply("u1", "j9", 0) // org2's listing

	result, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)
	s.Equal(0, result.Materialized)

	apps, err := s.applications.ListByOrganization(s.ctx, "org2")
	s.Require().NoError(err)
	s.Empty(apps, "reconciling org1 must not touch org2")
}

func (s *ReconcilerSuite) TestCarriesEventTimestamp() {
	s.apply("u1", "j1", 42*time.Minute)

	_, err := s.reconciler.Run(s.ctx, "org1")
	s.Require().NoError(err)

	apps, err := s.applications.ListByOrganization(s.ctx, "org1")
	s.Require().NoError(err)
	s.Require().Len(apps, 1)
	s.Equal(s.base.Add(42*time.Minute), apps[0].CreatedAt)
}

// blindApplications hides existing rows from the fast-path read so every
// pair goes to Insert, simulating a concurrent run that materialized the
// same pairs between the read and the writes.
type blindApplications struct {
	inner *application.Memory
}

func (b *blindApplications) ExistingKeys(context.Context, string) (map[application.Key]struct{}, error) {
	return map[application.Key]struct{}{}, nil
}

func (b *blindApplications) Insert(ctx context.Context, app application.Application) error {
	return b.inner.Insert(ctx, app)
}

func (s *ReconcilerSuite) TestUniquenessViolationIsBenign() {
	s.apply("u1", "j1", 0)
	s.apply("u2", "j2", time.Minute)

	// The other run already materialized u1/j1.
	s.Require().NoError(s.applications.Insert(s.ctx, application.Application{
		JobID: "j1", ActorID: "u1", OrganizationID: "org1",
		Status: application.StatusPending, CreatedAt: s.base,
	}))

	blind := &blindApplications{inner: s.applications}
	r := New(s.listings, s.events, blind)

	result, err := r.Run(s.ctx, "org1")
	s.Require().NoError(err, "constraint violation must not fail the run")
	s.Equal(1, result.Materialized, "remaining pairs still processed")
	s.Equal(1, result.AlreadyExisted)
}

type failingApplications struct {
	application.Memory
}

func (f *failingApplications) Insert(context.Context, application.Application) error {
	return errors.New("connection reset")
}

func (s *ReconcilerSuite) TestStorageFaultFailsRun() {
	s.apply("u1", "j1", 0)

	r := New(s.listings, s.events, &failingApplications{})
	_, err := r.Run(s.ctx, "org1")
	s.Require().Error(err)
	s.Contains(err.Error(), "materialize application")
}
