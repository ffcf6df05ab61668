// Package batch runs library-wide jobs: rescoring every entry against the
// current policy and syncing playback history from the media server. Jobs
// hold a file lock so concurrent invocations do not interleave, capture the
// rating policy once at start, and stop between items when the context is
// canceled, keeping whatever results were already produced.
package batch
