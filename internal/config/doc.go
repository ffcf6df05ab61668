// Package config loads, normalizes, and validates the reelcheck TOML
// configuration. Load applies defaults first, then file values, then
// normalization (path expansion, case folding, dedup), then validation.
// A config that survives Load is safe for every subsystem to consume
// without further checking.
package config
