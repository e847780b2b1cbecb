// Package application holds the derived application records materialized
// from apply events. Status transitions after materialization belong to the
// admin surface, not this engine.
package application

import "time"

// StatusPending is the status every materialized application starts in.
const StatusPending = "pending"

// Application is one deduplicated, materialized apply. At most one row exists
// per (JobID, ActorID), enforced by the store's composite primary key.
type Application struct {
	JobID          string
	ActorID        string
	OrganizationID string
	Status         string
	CreatedAt      time.Time
}

// Key identifies an application for uniqueness checks.
type Key struct {
	JobID   string
	ActorID string
}

func (a Application) Key() Key {
	return Key{JobID: a.JobID, ActorID: a.ActorID}
}
