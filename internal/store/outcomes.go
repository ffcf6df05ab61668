package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reelcheck/internal/media"
	"reelcheck/internal/rating"
	"reelcheck/internal/services"
)

// Outcome is one stored scoring result. The probed record travels with the
// score so history remains interpretable after the policy changes.
type Outcome struct {
	ID              int64
	EntryID         int64
	Score           int
	Classification  rating.Classification
	Issues          []string
	Recommendations []string
	Record          *media.Record
	ScoredAt        time.Time
}

// SaveOutcome appends a scoring result for an entry.
func (s *Store) SaveOutcome(ctx context.Context, entryID int64, outcome rating.Outcome, record media.Record) error {
	issues, err := json.Marshal(outcome.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	recommendations, err := json.Marshal(outcome.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	recordJSON, err := media.EncodeRecord(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.execWithRetry(ctx,
		`INSERT INTO outcomes (entry_id, score, classification, issues_json, recommendations_json, record_json, scored_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entryID, outcome.Score, outcome.Classification.String(),
		string(issues), string(recommendations), string(recordJSON), timestamp(),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// LatestOutcome returns the most recent scoring result for an entry.
func (s *Store) LatestOutcome(ctx context.Context, entryID int64) (Outcome, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, entry_id, score, classification, issues_json, recommendations_json, record_json, scored_at
         FROM outcomes WHERE entry_id = ? ORDER BY scored_at DESC, id DESC LIMIT 1`,
		entryID,
	)
	outcome, err := scanOutcome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Outcome{}, services.Wrap(services.ErrNotFound, "store", "latest outcome",
			fmt.Sprintf("no outcome for entry %d", entryID), nil)
	}
	return outcome, err
}

// ListLatestOutcomes returns the newest outcome per entry, ordered by entry.
func (s *Store) ListLatestOutcomes(ctx context.Context) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT o.id, o.entry_id, o.score, o.classification, o.issues_json, o.recommendations_json, o.record_json, o.scored_at
         FROM outcomes o
         JOIN (SELECT entry_id, MAX(id) AS max_id FROM outcomes GROUP BY entry_id) latest
           ON o.id = latest.max_id
         ORDER BY o.entry_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		outcome, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOutcome(row rowScanner) (Outcome, error) {
	var outcome Outcome
	var classification, issuesJSON, recommendationsJSON, recordJSON, scoredAt string
	if err := row.Scan(
		&outcome.ID, &outcome.EntryID, &outcome.Score, &classification,
		&issuesJSON, &recommendationsJSON, &recordJSON, &scoredAt,
	); err != nil {
		return Outcome{}, err
	}

	outcome.Classification = parseClassification(classification)
	// Recovery semantics: malformed persisted JSON degrades to empty
	// instead of failing the read.
	_ = json.Unmarshal([]byte(issuesJSON), &outcome.Issues)
	_ = json.Unmarshal([]byte(recommendationsJSON), &outcome.Recommendations)
	if record, err := media.DecodeRecord([]byte(recordJSON)); err == nil {
		outcome.Record = &record
	}
	if parsed, err := time.Parse(time.RFC3339Nano, scoredAt); err == nil {
		outcome.ScoredAt = parsed
	}
	return outcome, nil
}

func parseClassification(value string) rating.Classification {
	switch value {
	case rating.ClassificationOptimal.String():
		return rating.ClassificationOptimal
	case rating.ClassificationGood.String():
		return rating.ClassificationGood
	default:
		return rating.ClassificationPoor
	}
}
