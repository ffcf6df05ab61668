// Package logging builds the application slog.Logger. The console format is
// a compact single-line layout for interactive use; the json format emits
// one object per line for ingestion. A "component" attribute is promoted
// into the console message prefix so related lines group visually.
package logging
