// Package reconcile maps external playback events onto canonical library
// entries and library roots.
//
// Match tries an exact path comparison first, then falls back to
// name-similarity matching on the event title, and independently resolves
// the library root whose path prefixes the event path. Failing to match is
// a normal outcome, not an error: events from removed or foreign files stay
// unmatched until a maintenance job retries them.
package reconcile
