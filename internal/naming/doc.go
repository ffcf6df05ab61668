// Package naming canonicalizes media titles and filenames for fuzzy
// comparison.
//
// Normalize reduces a title or filename to a canonical lowercase form with
// release-year groups, bracketed tags, and separator punctuation removed.
// AreSimilar decides whether two normalized names denote the same title using
// equality, containment, and word-overlap heuristics in that order.
//
// All functions are pure and safe for concurrent use.
package naming
