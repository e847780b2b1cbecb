package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"jobpulse/internal/interaction"
	"jobpulse/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
	base  time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
	s.base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) append(typ interaction.EventType, actor, target string, offset time.Duration) interaction.Event {
	event := interaction.Event{
		ID:        uuid.New(),
		ActorID:   actor,
		Type:      typ,
		TargetID:  target,
		CreatedAt: s.base.Add(offset),
	}
	s.Require().NoError(s.store.Append(s.ctx, event))
	return event
}

func (s *MemoryStoreSuite) TestFetchNewestFirstWithLimit() {
	s.append(interaction.TypeLikeJob, "u1", "j1", 0)
	s.append(interaction.TypeApply, "u2", "j1", time.Minute)
	s.append(interaction.TypeScout, "o1", "u1", 2*time.Minute)

	events, err := s.store.Fetch(s.ctx, Filter{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(interaction.TypeScout, events[0].Type)
	s.Equal(interaction.TypeApply, events[1].Type)
}

func (s *MemoryStoreSuite) TestFetchFilters() {
	s.append(interaction.TypeLikeJob, "u1", "j1", 0)
	s.append(interaction.TypeLikeJob, "u2", "j2", time.Minute)
	s.append(interaction.TypeApply, "u1", "j1", 2*time.Minute)

	s.Run("by type", func() {
		events, err := s.store.Fetch(s.ctx, Filter{Types: []interaction.EventType{interaction.TypeApply}})
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal("u1", events[0].ActorID)
	})

	s.Run("by target set", func() {
		events, err := s.store.Fetch(s.ctx, Filter{TargetIDs: []string{"j2"}})
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(interaction.TypeLikeJob, events[0].Type)
	})

	s.Run("by time range", func() {
		events, err := s.store.Fetch(s.ctx, Filter{From: s.base.Add(time.Minute)})
		s.Require().NoError(err)
		s.Len(events, 2)
	})
}

func (s *MemoryStoreSuite) TestAppendDedupesByID() {
	event := s.append(interaction.TypeApply, "u1", "j1", 0)
	s.Require().NoError(s.store.Append(s.ctx, event))

	events, err := s.store.Fetch(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *MemoryStoreSuite) TestToggleLifecycle() {
	s.Run("find on empty store misses", func() {
		_, err := s.store.FindToggle(s.ctx, "a1", interaction.TypeCompanyMemoApp)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("delete clears all matches", func() {
		s.append(interaction.TypeCompanyFavoriteApp, "o1", "a1", 0)
		s.append(interaction.TypeCompanyFavoriteApp, "o1", "a1", time.Second)

		deleted, err := s.store.DeleteToggles(s.ctx, "a1", interaction.TypeCompanyFavoriteApp)
		s.Require().NoError(err)
		s.Equal(int64(2), deleted)
	})

	s.Run("update rewrites metadata in place", func() {
		memo := interaction.Event{
			ID:        uuid.New(),
			ActorID:   "o1",
			Type:      interaction.TypeCompanyMemoApp,
			TargetID:  "a1",
			Metadata:  map[string]string{interaction.MetadataContentKey: "first impression"},
			CreatedAt: s.base,
		}
		s.Require().NoError(s.store.Append(s.ctx, memo))

		err := s.store.UpdateToggleMetadata(s.ctx, memo.ID, map[string]string{interaction.MetadataContentKey: "second interview set"})
		s.Require().NoError(err)

		found, err := s.store.FindToggle(s.ctx, "a1", interaction.TypeCompanyMemoApp)
		s.Require().NoError(err)
		s.Equal("second interview set", found.MemoContent())
	})

	s.Run("update on unknown id misses", func() {
		err := s.store.UpdateToggleMetadata(s.ctx, uuid.New(), nil)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
