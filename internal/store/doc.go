// Package store persists library entries, library roots, playback events,
// and scoring outcomes in SQLite. Writes retry on SQLITE_BUSY with a short
// backoff so concurrent CLI invocations and batch jobs do not fail on lock
// contention.
package store
