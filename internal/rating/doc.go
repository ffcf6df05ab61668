// Package rating computes a deterministic compatibility score and
// classification for a media file under a configurable policy.
//
// Score evaluates a fixed ladder of deduction conditions against a
// media.Record, subtracting the policy's weight for each condition that
// holds while clamping the running score at zero. Evaluation order is fixed
// so issue and recommendation lists are reproducible across runs.
//
// LegacyBucket reimplements the superseded counting-based Direct
// Play/Remux/Transcode classification for display continuity; it is always
// recomputed from current thresholds and never read from a stored value.
package rating
