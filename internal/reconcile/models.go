package reconcile

import "time"

// PlaybackEvent is one playback-history record from an external playback
// server. Read-only input.
type PlaybackEvent struct {
	ID         string
	Title      string
	Path       string
	StartedAt  time.Time
	EndedAt    time.Time
	ClientName string
	DeviceID   string
}

// LibraryEntry is a canonical library file.
type LibraryEntry struct {
	ID       int64
	Path     string
	FileName string
}

// ComparisonName returns the name used for similarity matching: the stored
// file name when present, otherwise the file-name component of the path.
func (e LibraryEntry) ComparisonName() string {
	if e.FileName != "" {
		return e.FileName
	}
	return baseName(e.Path)
}

// LibraryRoot is a top-level library directory.
type LibraryRoot struct {
	ID     int64
	Path   string
	Active bool
}

// MatchResult references the matched entry and root, either of which may be
// nil. No match is a valid, stable outcome.
type MatchResult struct {
	Entry *LibraryEntry
	Root  *LibraryRoot
}
