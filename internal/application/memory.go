package application

import (
	"context"
	"sort"
	"sync"

	"jobpulse/pkg/platform/sentinel"
)

// Memory enforces the same (job, actor) uniqueness the postgres composite
// primary key does, so reconciler unit tests exercise the conflict path.
type Memory struct {
	mu      sync.RWMutex
	records map[Key]Application
}

func NewMemory() *Memory {
	return &Memory{records: make(map[Key]Application)}
}

func (s *Memory) ExistingKeys(_ context.Context, orgID string) (map[Key]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make(map[Key]struct{})
	for k, a := range s.records {
		if a.OrganizationID == orgID {
			keys[k] = struct{}{}
		}
	}
	return keys, nil
}

func (s *Memory) Insert(_ context.Context, app Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := app.Key()
	if _, exists := s.records[key]; exists {
		return sentinel.ErrConflict
	}
	s.records[key] = app
	return nil
}

func (s *Memory) ListByOrganization(_ context.Context, orgID string) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var apps []Application
	for _, a := range s.records {
		if a.OrganizationID == orgID {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}
