// Package services defines shared utilities consumed by the batch jobs and
// external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across scoring, matching, and sync jobs.
//   - Client implementations for external collaborators (see the playback
//     subpackage).
//
// Use these helpers when wiring new job logic so operational behaviour
// (error handling, per-item failure reporting) stays uniform.
package services
