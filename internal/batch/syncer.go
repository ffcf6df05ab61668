package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"reelcheck/internal/reconcile"
	"reelcheck/internal/services"
	"reelcheck/internal/store"
)

// EventSource supplies playback history. Satisfied by playback.Client.
type EventSource interface {
	History(ctx context.Context, since time.Time) ([]store.Event, error)
}

// Syncer ingests playback history and reconciles events against the
// library.
type Syncer struct {
	store   *store.Store
	source  EventSource
	workers int
	logger  *slog.Logger
	lock    *flock.Flock
}

// NewSyncer constructs a syncer sharing the batch lock path with the
// rescorer so the two jobs never overlap.
func NewSyncer(st *store.Store, source EventSource, workers int, logger *slog.Logger, lockPath string) *Syncer {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		store:   st,
		source:  source,
		workers: workers,
		logger:  logger.With("component", "sync"),
		lock:    flock.New(lockPath),
	}
}

// Sync fetches history since the given time, stores new events, and matches
// everything currently unmatched.
func (s *Syncer) Sync(ctx context.Context, since time.Time) (SyncResult, error) {
	if s.source == nil {
		return SyncResult{}, services.Wrap(services.ErrValidation, "sync", "run",
			"playback sync is not configured", nil)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return SyncResult{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return SyncResult{}, services.Wrap(services.ErrTransient, "sync", "lock",
			"another batch job is running", nil)
	}
	defer func() { _ = s.lock.Unlock() }()

	events, err := s.source.History(ctx, since)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{Fetched: len(events)}
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			result.Canceled = true
			return result, nil
		}
		_, inserted, err := s.store.InsertEvent(ctx, event)
		if err != nil {
			return result, fmt.Errorf("store event: %w", err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Duplicates++
		}
	}

	if err := s.matchUnmatched(ctx, &result); err != nil {
		return result, err
	}

	s.logger.Info("sync finished",
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"matched", result.Matched,
		"unmatched", result.Unmatched,
	)
	return result, nil
}

// Rematch retries reconciliation for stored events that never matched,
// picking up entries and roots added since ingestion.
func (s *Syncer) Rematch(ctx context.Context) (SyncResult, error) {
	locked, err := s.lock.TryLock()
	if err != nil {
		return SyncResult{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return SyncResult{}, services.Wrap(services.ErrTransient, "sync", "lock",
			"another batch job is running", nil)
	}
	defer func() { _ = s.lock.Unlock() }()

	var result SyncResult
	if err := s.matchUnmatched(ctx, &result); err != nil {
		return result, err
	}

	s.logger.Info("rematch finished", "matched", result.Matched, "unmatched", result.Unmatched)
	return result, nil
}

func (s *Syncer) matchUnmatched(ctx context.Context, result *SyncResult) error {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	roots, err := s.store.ListRoots(ctx)
	if err != nil {
		return fmt.Errorf("list roots: %w", err)
	}
	unmatched, err := s.store.ListUnmatchedEvents(ctx, 0)
	if err != nil {
		return fmt.Errorf("list unmatched events: %w", err)
	}

	jobs := make(chan store.Event)
	outcomes := make(chan matchOutcome, len(unmatched))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for event := range jobs {
				outcomes <- s.matchOne(ctx, event, entries, roots)
			}
		}()
	}

feed:
	for _, event := range unmatched {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}
		select {
		case <-ctx.Done():
			result.Canceled = true
			break feed
		case jobs <- event:
		}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			return outcome.err
		}
		if outcome.matched {
			result.Matched++
		} else {
			result.Unmatched++
		}
	}
	return nil
}

type matchOutcome struct {
	matched bool
	err     error
}

func (s *Syncer) matchOne(ctx context.Context, event store.Event, entries []reconcile.LibraryEntry, roots []reconcile.LibraryRoot) matchOutcome {
	match := reconcile.Match(event.PlaybackEvent, entries, roots)
	if match.Entry == nil && match.Root == nil {
		return matchOutcome{}
	}

	var entryID, rootID int64
	if match.Entry != nil {
		entryID = match.Entry.ID
	}
	if match.Root != nil {
		rootID = match.Root.ID
	}
	if err := s.store.MarkMatched(ctx, event.ID, entryID, rootID); err != nil {
		return matchOutcome{err: fmt.Errorf("mark matched: %w", err)}
	}
	return matchOutcome{matched: match.Entry != nil}
}
