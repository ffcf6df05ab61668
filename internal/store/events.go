package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelcheck/internal/reconcile"
)

// Play methods reported by playback servers. Anything else is stored
// verbatim and counted as neither direct play nor remux.
const (
	PlayMethodDirect    = "directplay"
	PlayMethodRemux     = "remux"
	PlayMethodTranscode = "transcode"
)

// Event is a stored playback event plus its reconciliation state. EntryID
// and RootID are zero while the event is unmatched.
type Event struct {
	reconcile.PlaybackEvent
	ExternalID string
	PlayMethod string
	EntryID    int64
	RootID     int64
	MatchedAt  time.Time
}

// InsertEvent stores a playback event under a fresh identifier. Events with
// a known external identifier are deduplicated; the returned bool reports
// whether a new row was written.
func (s *Store) InsertEvent(ctx context.Context, event Event) (string, bool, error) {
	id := uuid.NewString()
	res, err := s.execWithRetry(ctx,
		`INSERT INTO playback_events (
            id, external_id, title, path, client_name, device_id, play_method,
            started_at, ended_at, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (external_id) WHERE external_id != '' DO NOTHING`,
		id,
		strings.TrimSpace(event.ExternalID),
		event.Title,
		event.Path,
		event.ClientName,
		event.DeviceID,
		strings.ToLower(strings.TrimSpace(event.PlayMethod)),
		nullableTime(event.StartedAt),
		nullableTime(event.EndedAt),
		timestamp(),
	)
	if err != nil {
		return "", false, fmt.Errorf("insert event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return "", false, nil
	}
	return id, true, nil
}

// ListUnmatchedEvents returns events without a library entry, oldest first.
// A limit of 0 returns everything.
func (s *Store) ListUnmatchedEvents(ctx context.Context, limit int) ([]Event, error) {
	query := `SELECT id, external_id, title, path, client_name, device_id, play_method,
                     started_at, ended_at
              FROM playback_events WHERE entry_id IS NULL ORDER BY created_at ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list unmatched events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var startedAt, endedAt sql.NullString
		if err := rows.Scan(
			&event.ID, &event.ExternalID, &event.Title, &event.Path,
			&event.ClientName, &event.DeviceID, &event.PlayMethod,
			&startedAt, &endedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.StartedAt = parseNullableTime(startedAt)
		event.EndedAt = parseNullableTime(endedAt)
		events = append(events, event)
	}
	return events, rows.Err()
}

// MarkMatched records the reconciliation result for an event. A zero
// entryID or rootID clears that side of the match.
func (s *Store) MarkMatched(ctx context.Context, eventID string, entryID, rootID int64) error {
	_, err := s.execWithRetry(ctx,
		"UPDATE playback_events SET entry_id = ?, root_id = ?, matched_at = ? WHERE id = ?",
		nullableID(entryID), nullableID(rootID), timestamp(), eventID,
	)
	if err != nil {
		return fmt.Errorf("mark matched: %w", err)
	}
	return nil
}

// PlayCounts returns how often an entry direct-played and remuxed.
func (s *Store) PlayCounts(ctx context.Context, entryID int64) (direct, remux int, err error) {
	err = s.db.QueryRowContext(ensureContext(ctx),
		`SELECT
            COUNT(CASE WHEN play_method = ? THEN 1 END),
            COUNT(CASE WHEN play_method = ? THEN 1 END)
         FROM playback_events WHERE entry_id = ?`,
		PlayMethodDirect, PlayMethodRemux, entryID,
	).Scan(&direct, &remux)
	if err != nil {
		return 0, 0, fmt.Errorf("count plays: %w", err)
	}
	return direct, remux, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseNullableTime(value sql.NullString) time.Time {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, value.String)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
