package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"jobpulse/internal/interaction"
	"jobpulse/pkg/platform/sentinel"
)

// Memory mirrors the Postgres store semantics for unit tests.
type Memory struct {
	mu     sync.RWMutex
	events []interaction.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Fetch(_ context.Context, filter Filter) ([]interaction.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []interaction.Event
	for _, e := range s.events {
		if filter.matches(e) {
			matched = append(matched, cloneEvent(e))
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *Memory) Append(_ context.Context, event interaction.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.events {
		if existing.ID == event.ID {
			return nil
		}
	}
	s.events = append(s.events, cloneEvent(event))
	return nil
}

func (s *Memory) DeleteToggles(_ context.Context, targetID string, typ interaction.EventType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []interaction.Event
	var deleted int64
	for _, e := range s.events {
		if e.TargetID == targetID && e.Type == typ {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return deleted, nil
}

func (s *Memory) FindToggle(_ context.Context, targetID string, typ interaction.EventType) (interaction.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := false
	var newest interaction.Event
	for _, e := range s.events {
		if e.TargetID != targetID || e.Type != typ {
			continue
		}
		if !found || e.CreatedAt.After(newest.CreatedAt) {
			newest = e
			found = true
		}
	}
	if !found {
		return interaction.Event{}, sentinel.ErrNotFound
	}
	return cloneEvent(newest), nil
}

func (s *Memory) UpdateToggleMetadata(_ context.Context, eventID uuid.UUID, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == eventID {
			s.events[i].Metadata = cloneMetadata(metadata)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func cloneEvent(e interaction.Event) interaction.Event {
	e.Metadata = cloneMetadata(e.Metadata)
	return e
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
