package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"jobpulse/pkg/platform/sentinel"
)

// uniqueViolation is the postgres error code raised when the composite
// primary key rejects a duplicate (job, actor) pair.
const uniqueViolation = "23505"

// Postgres reads and appends application rows.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ExistingKeys returns the set of (job, actor) pairs already materialized for
// the organization. The reconciler uses this only as a fast path; the
// primary key is the actual guarantee.
func (s *Postgres) ExistingKeys(ctx context.Context, orgID string) (map[Key]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT job_id, actor_id FROM applications WHERE organization_id = $1",
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("query application keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[Key]struct{})
	for rows.Next() {
		var k Key
		if err := rows.Scan(&k.JobID, &k.ActorID); err != nil {
			return nil, fmt.Errorf("scan application key: %w", err)
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application keys: %w", err)
	}
	return keys, nil
}

// Insert appends one application row. A uniqueness violation surfaces as
// sentinel.ErrConflict so callers can treat "already materialized" as a
// benign outcome.
func (s *Postgres) Insert(ctx context.Context, app Application) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (job_id, actor_id, organization_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		app.JobID, app.ActorID, app.OrganizationID, app.Status, app.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// ListByOrganization returns the organization's materialized applications,
// newest first.
func (s *Postgres) ListByOrganization(ctx context.Context, orgID string) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, actor_id, organization_id, status, created_at
		 FROM applications WHERE organization_id = $1 ORDER BY created_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.JobID, &a.ActorID, &a.OrganizationID, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}
