package reconcile

import (
	"sort"
	"strings"

	"reelcheck/internal/naming"
)

// Match resolves a playback event against the library. Entries are scanned
// in ascending-identifier order so ties resolve the same way on every run.
// An exact path match always wins over a name-similarity match; the root
// match is independent of both.
func Match(event PlaybackEvent, entries []LibraryEntry, roots []LibraryRoot) MatchResult {
	return match(event, entries, roots, caseInsensitivePaths)
}

func match(event PlaybackEvent, entries []LibraryEntry, roots []LibraryRoot, caseInsensitive bool) MatchResult {
	ordered := orderedEntries(entries)
	result := MatchResult{}

	if entry := matchByPath(event, ordered, caseInsensitive); entry != nil {
		result.Entry = entry
	} else if strings.TrimSpace(event.Title) != "" {
		result.Entry = matchByName(event, ordered)
	}

	result.Root = matchRoot(event, roots)
	return result
}

func matchByPath(event PlaybackEvent, ordered []*LibraryEntry, caseInsensitive bool) *LibraryEntry {
	eventPath := normalizePath(event.Path, caseInsensitive)
	if eventPath == "" {
		return nil
	}
	for _, entry := range ordered {
		if normalizePath(entry.Path, caseInsensitive) == eventPath {
			return entry
		}
	}
	return nil
}

func matchByName(event PlaybackEvent, ordered []*LibraryEntry) *LibraryEntry {
	eventTitle := naming.Normalize(event.Title)
	if eventTitle == "" {
		return nil
	}
	for _, entry := range ordered {
		name := naming.Normalize(entry.ComparisonName())
		if name == "" {
			continue
		}
		if naming.AreSimilar(eventTitle, name) {
			return entry
		}
	}
	return nil
}

// matchRoot picks the first active root whose normalized path is a
// case-insensitive prefix of the normalized event path. Roots are scanned
// in ascending-identifier order.
func matchRoot(event PlaybackEvent, roots []LibraryRoot) *LibraryRoot {
	eventPath := strings.ToLower(normalizePath(event.Path, false))
	if eventPath == "" {
		return nil
	}
	ordered := make([]*LibraryRoot, 0, len(roots))
	for i := range roots {
		if roots[i].Active {
			ordered = append(ordered, &roots[i])
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, root := range ordered {
		rootPath := strings.ToLower(normalizePath(root.Path, false))
		if rootPath == "" {
			continue
		}
		if strings.HasPrefix(eventPath, rootPath) {
			return root
		}
	}
	return nil
}

func orderedEntries(entries []LibraryEntry) []*LibraryEntry {
	ordered := make([]*LibraryEntry, 0, len(entries))
	for i := range entries {
		ordered = append(ordered, &entries[i])
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered
}
