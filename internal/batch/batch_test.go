package batch_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"reelcheck/internal/batch"
	"reelcheck/internal/config"
	"reelcheck/internal/media"
	"reelcheck/internal/rating"
	"reelcheck/internal/reconcile"
	"reelcheck/internal/services"
	"reelcheck/internal/store"
	"reelcheck/internal/testsupport"
)

type fakeExtractor struct {
	records map[string]media.Record
	errs    map[string]error
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (media.Record, error) {
	if err, ok := f.errs[path]; ok {
		return media.Record{}, err
	}
	record, ok := f.records[path]
	if !ok {
		return media.Record{}, fmt.Errorf("no record for %s", path)
	}
	return record, nil
}

type fakeSource struct {
	events []store.Event
	err    error
}

func (f *fakeSource) History(_ context.Context, _ time.Time) ([]store.Event, error) {
	return f.events, f.err
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func goodRecord(path string) media.Record {
	return media.Record{
		Path:            path,
		Container:       "mkv",
		VideoCodec:      "hevc",
		CodecTagCorrect: true,
		BitDepth:        10,
		HDR:             true,
		FastStart:       true,
		AudioTracks:     []media.AudioTrack{{Codec: "eac3", Channels: 6}},
		FileSize:        9_000_000_000,
		DurationSeconds: 7200,
	}
}

func testPolicy() rating.Policy {
	cfg := config.Default()
	return cfg.RatingPolicy()
}

func lockPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "batch.lock")
}

func TestRescoreScoresAllEntries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first, err := s.UpsertEntry(ctx, "/library/Good.mkv", "Good.mkv")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := s.UpsertEntry(ctx, "/library/Bad.webm", "Bad.webm")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	bad := goodRecord("/library/Bad.webm")
	bad.Container = "webm"
	bad.VideoCodec = "vp9"
	extractor := &fakeExtractor{records: map[string]media.Record{
		"/library/Good.mkv": goodRecord("/library/Good.mkv"),
		"/library/Bad.webm": bad,
	}}

	rescorer := batch.NewRescorer(s, extractor, testPolicy(), 4, nil, lockPath(t))
	result, err := rescorer.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Scored != 2 || result.Failed != 0 || result.Canceled {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Items) != 2 || result.Items[0].EntryID != first.ID || result.Items[1].EntryID != second.ID {
		t.Fatalf("items not in entry order: %+v", result.Items)
	}
	if result.Items[0].Score != 100 {
		t.Fatalf("good entry score = %d", result.Items[0].Score)
	}
	if result.Items[1].Score >= result.Items[0].Score {
		t.Fatalf("vp9 entry should score below hevc: %+v", result.Items)
	}

	outcome, err := s.LatestOutcome(ctx, second.ID)
	if err != nil {
		t.Fatalf("latest outcome: %v", err)
	}
	if outcome.Score != result.Items[1].Score {
		t.Fatalf("persisted score %d != reported %d", outcome.Score, result.Items[1].Score)
	}
}

func TestRescoreProbeFailureCounted(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	entry, err := s.UpsertEntry(ctx, "/library/Broken.mkv", "Broken.mkv")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	extractor := &fakeExtractor{errs: map[string]error{
		"/library/Broken.mkv": services.Wrap(services.ErrExternalTool, "probe", "run", "ffprobe exited 1", nil),
	}}

	rescorer := batch.NewRescorer(s, extractor, testPolicy(), 1, nil, lockPath(t))
	result, err := rescorer.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Failed != 1 || result.Scored != 0 {
		t.Fatalf("result = %+v", result)
	}
	if _, err := s.LatestOutcome(ctx, entry.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("failed probe must not persist an outcome, got %v", err)
	}
}

func TestRescoreLockContention(t *testing.T) {
	s := openStore(t)
	path := lockPath(t)

	held := flock.New(path)
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	rescorer := batch.NewRescorer(s, &fakeExtractor{}, testPolicy(), 1, nil, path)
	_, err = rescorer.Run(context.Background())
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient lock error, got %v", err)
	}
}

func TestRescoreCanceledKeepsNothingUnscored(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.UpsertEntry(context.Background(), "/library/Movie.mkv", "Movie.mkv"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rescorer := batch.NewRescorer(s, &fakeExtractor{}, testPolicy(), 1, nil, lockPath(t))
	result, err := rescorer.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Canceled {
		t.Fatalf("expected canceled result, got %+v", result)
	}
	if result.Scored != 0 && result.Failed != 0 {
		t.Fatalf("no work should have been attempted: %+v", result)
	}
}

func TestSyncInsertsAndMatches(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	entry, err := s.UpsertEntry(ctx, "/library/Movie.mkv", "Movie.mkv")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := s.AddRoot(ctx, "/library"); err != nil {
		t.Fatalf("add root: %v", err)
	}

	source := &fakeSource{events: []store.Event{
		{
			PlaybackEvent: reconcile.PlaybackEvent{Title: "Movie", Path: "/library/Movie.mkv"},
			ExternalID:    "ev-1",
			PlayMethod:    "directplay",
		},
		{
			PlaybackEvent: reconcile.PlaybackEvent{Title: "Unknown Film", Path: "/elsewhere/x.mkv"},
			ExternalID:    "ev-2",
		},
	}}

	syncer := batch.NewSyncer(s, source, 2, nil, lockPath(t))
	result, err := syncer.Sync(ctx, time.Time{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Fetched != 2 || result.Inserted != 2 || result.Duplicates != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.Matched != 1 || result.Unmatched != 1 {
		t.Fatalf("match counts = %+v", result)
	}

	direct, _, err := s.PlayCounts(ctx, entry.ID)
	if err != nil {
		t.Fatalf("play counts: %v", err)
	}
	if direct != 1 {
		t.Fatalf("direct plays = %d, want 1", direct)
	}

	// Second sync with the same feed only produces duplicates.
	again, err := syncer.Sync(ctx, time.Time{})
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if again.Inserted != 0 || again.Duplicates != 2 {
		t.Fatalf("second sync = %+v", again)
	}
}

func TestRematchPicksUpNewEntries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	event := store.Event{
		PlaybackEvent: reconcile.PlaybackEvent{Title: "Late Movie", Path: "/library/Late Movie.mkv"},
		ExternalID:    "ev-late",
	}
	if _, inserted, err := s.InsertEvent(ctx, event); err != nil || !inserted {
		t.Fatalf("insert event: inserted=%v err=%v", inserted, err)
	}

	syncer := batch.NewSyncer(s, nil, 2, nil, lockPath(t))
	result, err := syncer.Rematch(ctx)
	if err != nil {
		t.Fatalf("Rematch: %v", err)
	}
	if result.Matched != 0 || result.Unmatched != 1 {
		t.Fatalf("before entry exists: %+v", result)
	}

	testsupport.NewEntry(t, s, "/library/Late Movie.mkv", "Late Movie.mkv")
	result, err = syncer.Rematch(ctx)
	if err != nil {
		t.Fatalf("second Rematch: %v", err)
	}
	if result.Matched != 1 {
		t.Fatalf("after entry exists: %+v", result)
	}
}

func TestSyncWithoutSource(t *testing.T) {
	s := openStore(t)
	syncer := batch.NewSyncer(s, nil, 1, nil, lockPath(t))
	if _, err := syncer.Sync(context.Background(), time.Time{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
