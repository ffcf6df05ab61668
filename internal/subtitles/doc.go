// Package subtitles associates external subtitle files with video files
// using filename heuristics.
//
// Find lists a video's directory for sidecar subtitle candidates and runs
// them through Associate, which evaluates a fixed priority ladder of stem
// comparison rules per candidate. Results are deduplicated and ordered with
// the closest match (shortest path) first so callers can take the head of
// the list as the primary subtitle.
//
// Listing failures (missing directory, permission errors) degrade to an
// empty result; the associator never fails the surrounding analysis.
package subtitles
