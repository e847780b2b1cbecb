package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// The postgres directories all follow the same shape: one set-valued query
// per call, missing ids simply absent from the result. Callers are expected
// to skip the call entirely for empty id sets; the guard here is belt and
// braces.

type PostgresPeople struct {
	db *sql.DB
}

func NewPostgresPeople(db *sql.DB) *PostgresPeople {
	return &PostgresPeople{db: db}
}

func (d *PostgresPeople) FindByIDs(ctx context.Context, ids []string) ([]Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, name, email FROM people WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

type PostgresOrganizations struct {
	db *sql.DB
}

func NewPostgresOrganizations(db *sql.DB) *PostgresOrganizations {
	return &PostgresOrganizations{db: db}
}

func (d *PostgresOrganizations) FindByIDs(ctx context.Context, ids []string) ([]Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, name FROM organizations WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", err)
	}
	defer rows.Close()

	var orgs []Organization
	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizations: %w", err)
	}
	return orgs, nil
}

type PostgresListings struct {
	db *sql.DB
}

func NewPostgresListings(db *sql.DB) *PostgresListings {
	return &PostgresListings{db: db}
}

func (d *PostgresListings) FindByIDs(ctx context.Context, ids []string) ([]Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, title, organization_id FROM listings WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.OrganizationID); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// IDsByOrganization returns the ids of every listing the organization owns.
func (d *PostgresListings) IDsByOrganization(ctx context.Context, orgID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT id FROM listings WHERE organization_id = $1",
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("query organization listings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan listing id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing ids: %w", err)
	}
	return ids, nil
}

type PostgresMedia struct {
	db *sql.DB
}

func NewPostgresMedia(db *sql.DB) *PostgresMedia {
	return &PostgresMedia{db: db}
}

func (d *PostgresMedia) FindByIDs(ctx context.Context, ids []string) ([]Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, title FROM media_reels WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("query media reels: %w", err)
	}
	defer rows.Close()

	var media []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.Title); err != nil {
			return nil, fmt.Errorf("scan media reel: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media reels: %w", err)
	}
	return media, nil
}
