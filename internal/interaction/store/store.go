// Package store provides read and narrow-write access to the
// interaction_events log. It is the only package issuing storage I/O for
// events; it applies no entity-resolution logic.
package store

import (
	"time"

	"jobpulse/internal/interaction"
)

// Filter bounds and narrows an event fetch. The zero value matches
// everything; results are always newest-first.
type Filter struct {
	Limit     int
	Types     []interaction.EventType
	TargetIDs []string
	ActorID   string
	From      time.Time
	To        time.Time
}

func (f Filter) matches(e interaction.Event) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.TargetIDs) > 0 {
		found := false
		for _, id := range f.TargetIDs {
			if e.TargetID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ActorID != "" && e.ActorID != f.ActorID {
		return false
	}
	if !f.From.IsZero() && e.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.CreatedAt.After(f.To) {
		return false
	}
	return true
}
