package subtitles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions recognized as external subtitle files, compared
// case-insensitively against directory entries.
var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".vtt": {},
	".ass": {},
	".ssa": {},
	".sub": {},
}

// stemSeparators are suffix delimiters accepted between a video stem and a
// subtitle qualifier such as a language or "forced" tag.
var stemSeparators = []string{" ", "-", "_", " - ", " -", "- "}

// squashBoundary lists characters allowed immediately after the squashed
// video stem inside a squashed candidate stem.
const squashBoundary = ". -_(["

// squashReplacer strips every separator character entirely. This is a
// stricter form than naming.Normalize, used only for subtitle matching.
var squashReplacer = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")

// Find lists the video's directory (non-recursively) and returns the
// subtitle paths that belong to it, ordered closest match first. Any listing
// error yields an empty result.
func Find(videoPath string) []string {
	dir := filepath.Dir(videoPath)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	candidates := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if IsSubtitleFile(entry.Name()) {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}
	return Associate(videoPath, candidates)
}

// IsSubtitleFile reports whether a file name carries a recognized subtitle
// extension.
func IsSubtitleFile(name string) bool {
	_, ok := subtitleExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FormatForPath maps a subtitle file path to the format name ffprobe would
// report for the embedded equivalent.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return "subrip"
	case ".vtt":
		return "webvtt"
	case ".ass":
		return "ass"
	case ".ssa":
		return "ssa"
	case ".sub":
		return "sub"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

// Associate filters candidate subtitle paths down to those matching the
// video file. Each candidate is evaluated independently against the rule
// ladder; the result is deduplicated and sorted by path length, then
// lexicographically as a stable tie-break.
func Associate(videoPath string, candidates []string) []string {
	videoStem := stem(filepath.Base(videoPath))
	if videoStem == "" {
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))
	matched := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if !IsSubtitleFile(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		if stemMatches(videoStem, stem(filepath.Base(candidate))) {
			seen[candidate] = struct{}{}
			matched = append(matched, candidate)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if len(matched[i]) != len(matched[j]) {
			return len(matched[i]) < len(matched[j])
		}
		return matched[i] < matched[j]
	})
	return matched
}

// stemMatches runs the priority ladder. Rules are ordered from the exact
// sidecar convention down to loose squashed-substring containment; a
// candidate matches on the first rule it satisfies.
func stemMatches(videoStem, candidateStem string) bool {
	video := strings.ToLower(videoStem)
	candidate := strings.ToLower(candidateStem)
	videoTrimmed := strings.TrimSpace(video)
	candidateTrimmed := strings.TrimSpace(candidate)

	// Rule 1: identical stems.
	if candidateTrimmed == videoTrimmed {
		return true
	}

	// Rule 2: stem plus a dotted qualifier ("movie.eng", "movie.forced").
	if strings.HasPrefix(candidate, video+".") || strings.HasPrefix(candidateTrimmed, videoTrimmed+".") {
		return true
	}

	// Rule 3: longer stem beginning with the video stem, dot immediately after.
	if dotFollowsPrefix(candidate, video) || dotFollowsPrefix(candidateTrimmed, videoTrimmed) {
		return true
	}

	// Rule 4: stem plus a separator-delimited qualifier.
	for _, sep := range stemSeparators {
		if strings.HasPrefix(candidateTrimmed, videoTrimmed+sep) {
			return true
		}
	}

	// Rule 5: stem contained anywhere.
	if strings.Contains(candidateTrimmed, videoTrimmed) {
		return true
	}

	// Rules 6 and 7 compare squashed forms, tolerating separator-style
	// differences between the video and subtitle names.
	squashedVideo := squashReplacer.Replace(videoTrimmed)
	squashedCandidate := squashReplacer.Replace(candidateTrimmed)
	if squashedVideo == "" {
		return false
	}
	if strings.HasPrefix(squashedCandidate, squashedVideo) {
		if len(squashedCandidate) == len(squashedVideo) {
			return true
		}
		if strings.ContainsRune(squashBoundary, rune(squashedCandidate[len(squashedVideo)])) {
			return true
		}
	}
	if len(squashedVideo) >= 3 && strings.Contains(squashedCandidate, squashedVideo) {
		return true
	}
	return false
}

func dotFollowsPrefix(candidate, video string) bool {
	if len(candidate) <= len(video) || video == "" {
		return false
	}
	return strings.HasPrefix(candidate, video) && candidate[len(video)] == '.'
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
