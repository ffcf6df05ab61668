package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gofrs/flock"

	"reelcheck/internal/media"
	"reelcheck/internal/rating"
	"reelcheck/internal/reconcile"
	"reelcheck/internal/services"
	"reelcheck/internal/store"
	"reelcheck/internal/subtitles"
)

// Extractor probes a media file into a record. Satisfied by
// ffprobe.Extractor; tests substitute a fake.
type Extractor interface {
	Extract(ctx context.Context, path string) (media.Record, error)
}

// Rescorer probes and scores every library entry. The policy is captured at
// construction, so a config reload mid-run never mixes two policies within
// one batch.
type Rescorer struct {
	store     *store.Store
	extractor Extractor
	policy    rating.Policy
	workers   int
	logger    *slog.Logger
	lock      *flock.Flock
}

// NewRescorer constructs a rescorer. The lock path guards against a second
// rescore starting while one is running.
func NewRescorer(st *store.Store, extractor Extractor, policy rating.Policy, workers int, logger *slog.Logger, lockPath string) *Rescorer {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rescorer{
		store:     st,
		extractor: extractor,
		policy:    policy,
		workers:   workers,
		logger:    logger.With("component", "rescore"),
		lock:      flock.New(lockPath),
	}
}

// Run rescores every library entry. Cancellation stops the run between
// items; results for completed items are kept and reported.
func (r *Rescorer) Run(ctx context.Context) (RescoreResult, error) {
	locked, err := r.lock.TryLock()
	if err != nil {
		return RescoreResult{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return RescoreResult{}, services.Wrap(services.ErrTransient, "rescore", "lock",
			"another batch job is running", nil)
	}
	defer func() { _ = r.lock.Unlock() }()

	entries, err := r.store.ListEntries(ctx)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list entries: %w", err)
	}

	jobs := make(chan reconcile.LibraryEntry)
	results := make(chan ItemResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				results <- r.scoreEntry(ctx, entry)
			}
		}()
	}

	var canceled bool
feed:
	for _, entry := range entries {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
			break feed
		case jobs <- entry:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	result := RescoreResult{Canceled: canceled}
	for item := range results {
		result.Items = append(result.Items, item)
		if item.Err != nil {
			result.Failed++
		} else {
			result.Scored++
		}
	}
	sort.Slice(result.Items, func(i, j int) bool { return result.Items[i].EntryID < result.Items[j].EntryID })

	r.logger.Info("rescore finished",
		"scored", result.Scored,
		"failed", result.Failed,
		"canceled", result.Canceled,
	)
	return result, nil
}

func (r *Rescorer) scoreEntry(ctx context.Context, entry reconcile.LibraryEntry) ItemResult {
	item := ItemResult{EntryID: entry.ID, Path: entry.Path}

	record, err := r.extractor.Extract(ctx, entry.Path)
	if err != nil {
		item.Err = err
		r.logger.Warn("probe failed", "path", entry.Path, "error", err)
		return item
	}

	if external := subtitles.Find(entry.Path); len(external) > 0 {
		record = record.WithExternalSubtitles(subtitles.FormatForPath, external)
	}

	outcome := rating.Score(record, r.policy)
	if err := r.store.SaveOutcome(ctx, entry.ID, outcome, record); err != nil {
		item.Err = err
		return item
	}

	item.Score = outcome.Score
	item.Classification = outcome.Classification
	r.logger.Debug("scored entry",
		"path", entry.Path,
		"score", outcome.Score,
		"classification", outcome.Classification.String(),
	)
	return item
}
