package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"jobpulse/internal/interaction"
	"jobpulse/pkg/platform/sentinel"
)

// Postgres reads and writes the interaction_events table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const eventColumns = "id, actor_id, event_type, target_id, metadata, created_at"

// Fetch returns events matching the filter, newest first. Partial results are
// never returned: any storage error fails the whole call.
func (s *Postgres) Fetch(ctx context.Context, filter Filter) ([]interaction.Event, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		conds = append(conds, "event_type = ANY("+arg(pq.Array(types))+")")
	}
	if len(filter.TargetIDs) > 0 {
		conds = append(conds, "target_id = ANY("+arg(pq.Array(filter.TargetIDs))+")")
	}
	if filter.ActorID != "" {
		conds = append(conds, "actor_id = "+arg(filter.ActorID))
	}
	if !filter.From.IsZero() {
		conds = append(conds, "created_at >= "+arg(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "created_at <= "+arg(filter.To))
	}

	query := "SELECT " + eventColumns + " FROM interaction_events"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interaction events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Append inserts an event. Re-appending the same event id is a no-op so the
// intake worker tolerates at-least-once delivery.
func (s *Postgres) Append(ctx context.Context, event interaction.Event) error {
	metadata, err := marshalMetadata(event.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO interaction_events (id, actor_id, event_type, target_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		event.ID,
		event.ActorID,
		string(event.Type),
		nullString(event.TargetID),
		metadata,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction event: %w", err)
	}
	return nil
}

// DeleteToggles removes every toggle row for the (target, type) key and
// reports how many were cleared. Pre-existing duplicates are tolerated by
// construction: turning a toggle off always clears all matches.
func (s *Postgres) DeleteToggles(ctx context.Context, targetID string, typ interaction.EventType) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM interaction_events WHERE target_id = $1 AND event_type = $2",
		targetID, string(typ),
	)
	if err != nil {
		return 0, fmt.Errorf("delete toggle events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted toggle events: %w", err)
	}
	return n, nil
}

// FindToggle returns the most recent toggle row for the (target, type) key,
// or sentinel.ErrNotFound.
func (s *Postgres) FindToggle(ctx context.Context, targetID string, typ interaction.EventType) (interaction.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM interaction_events WHERE target_id = $1 AND event_type = $2 ORDER BY created_at DESC LIMIT 1",
		targetID, string(typ),
	)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return interaction.Event{}, sentinel.ErrNotFound
		}
		return interaction.Event{}, fmt.Errorf("find toggle event: %w", err)
	}
	return event, nil
}

// UpdateToggleMetadata rewrites a toggle row's metadata in place. Only memo
// rows are ever updated this way.
func (s *Postgres) UpdateToggleMetadata(ctx context.Context, eventID uuid.UUID, metadata map[string]string) error {
	payload, err := marshalMetadata(metadata)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE interaction_events SET metadata = $2 WHERE id = $1",
		eventID, payload,
	)
	if err != nil {
		return fmt.Errorf("update toggle metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count updated toggle rows: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (interaction.Event, error) {
	var (
		event    interaction.Event
		typ      string
		targetID sql.NullString
		metadata []byte
	)
	if err := row.Scan(&event.ID, &event.ActorID, &typ, &targetID, &metadata, &event.CreatedAt); err != nil {
		return interaction.Event{}, err
	}
	event.Type = interaction.EventType(typ)
	if targetID.Valid {
		event.TargetID = targetID.String
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return interaction.Event{}, fmt.Errorf("decode event metadata: %w", err)
		}
	}
	return event, nil
}

func scanEvents(rows *sql.Rows) ([]interaction.Event, error) {
	var events []interaction.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction events: %w", err)
	}
	return events, nil
}

func marshalMetadata(metadata map[string]string) ([]byte, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode event metadata: %w", err)
	}
	return payload, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
