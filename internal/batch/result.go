package batch

import "reelcheck/internal/rating"

// ItemResult is the outcome for a single entry in a rescore run.
type ItemResult struct {
	EntryID        int64
	Path           string
	Score          int
	Classification rating.Classification
	Err            error
}

// RescoreResult summarizes a rescore run. Items holds per-entry outcomes in
// entry order; a canceled run keeps the items completed before cancellation.
type RescoreResult struct {
	Scored   int
	Failed   int
	Canceled bool
	Items    []ItemResult
}

// SyncResult summarizes a playback history sync or rematch run.
type SyncResult struct {
	Fetched    int
	Inserted   int
	Duplicates int
	Matched    int
	Unmatched  int
	Canceled   bool
}
