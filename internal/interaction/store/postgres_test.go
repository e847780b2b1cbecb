package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpulse/internal/interaction"
	"jobpulse/pkg/platform/sentinel"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation
// checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var eventRowColumns = []string{"id", "actor_id", "event_type", "target_id", "metadata", "created_at"}

func TestFetchBuildsFilteredQuery(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)
	now := time.Now()

	rows := sqlmock.NewRows(eventRowColumns).
		AddRow(uuid.New().String(), "u1", "apply", "j1", []byte(`{}`), now).
		AddRow(uuid.New().String(), "u2", "apply", "j1", []byte(`{}`), now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT id, actor_id, event_type, target_id, metadata, created_at FROM interaction_events WHERE event_type = ANY\(\$1\) ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(pq.Array([]string{"apply"}), 20).
		WillReturnRows(rows)

	events, err := s.Fetch(context.Background(), Filter{
		Limit: 20,
		Types: []interaction.EventType{interaction.TypeApply},
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "u1", events[0].ActorID)
	assert.Equal(t, "j1", events[0].TargetID)
}

func TestFetchUnfilteredHasNoWhereClause(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectQuery(`SELECT id, actor_id, event_type, target_id, metadata, created_at FROM interaction_events ORDER BY created_at DESC$`).
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := s.Fetch(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFetchSurfacesStorageError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectQuery(`SELECT .+ FROM interaction_events`).
		WillReturnError(sql.ErrConnDone)

	_, err := s.Fetch(context.Background(), Filter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestFetchDecodesNullTargetAndMetadata(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	rows := sqlmock.NewRows(eventRowColumns).
		AddRow(uuid.New().String(), "o1", "company_memo_app", nil, []byte(`{"content":"call back monday"}`), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM interaction_events`).WillReturnRows(rows)

	events, err := s.Fetch(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].TargetID)
	assert.Equal(t, "call back monday", events[0].MemoContent())
}

func TestAppendIsIdempotentOnID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)
	event := interaction.Event{
		ID:        uuid.New(),
		ActorID:   "u1",
		Type:      interaction.TypeApply,
		TargetID:  "j1",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO interaction_events .+ ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(event.ID, "u1", "apply", sqlmock.AnyArg(), []byte(`{}`), event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Append(context.Background(), event))
}

func TestDeleteTogglesReportsCount(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectExec(`DELETE FROM interaction_events WHERE target_id = \$1 AND event_type = \$2`).
		WithArgs("a1", "company_favorite_app").
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := s.DeleteToggles(context.Background(), "a1", interaction.TypeCompanyFavoriteApp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestFindToggleMiss(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectQuery(`SELECT .+ FROM interaction_events WHERE target_id = \$1 AND event_type = \$2 ORDER BY created_at DESC LIMIT 1`).
		WithArgs("a1", "company_memo_app").
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	_, err := s.FindToggle(context.Background(), "a1", interaction.TypeCompanyMemoApp)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestUpdateToggleMetadataMiss(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE interaction_events SET metadata = \$2 WHERE id = \$1`).
		WithArgs(id, []byte(`{"content":"x"}`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateToggleMetadata(context.Background(), id, map[string]string{"content": "x"})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
