// Package ffprobe implements the external metadata-extraction collaborator.
// It shells out to ffprobe, decodes the JSON report, and maps it to a
// media.Record. The reconciliation and scoring core never invokes ffprobe
// itself; batch jobs use this package to produce records for it.
package ffprobe
