// Package media defines the per-file technical metadata record consumed by
// the rating engine, plus the JSON codec used when track lists are stored
// out of band.
//
// Records are immutable inputs: they are produced by an external
// metadata-extraction step (see the ffprobe subpackage) and never mutated by
// the core. Malformed stored track data decodes to an empty track list
// rather than failing the surrounding batch.
package media
