package config

import "sync/atomic"

// Snapshot provides lock-free access to the current configuration. Batch
// jobs capture the config once at start; a reload swaps the pointer without
// disturbing batches already running against the old policy.
type Snapshot struct {
	current atomic.Pointer[Config]
}

// NewSnapshot seeds a snapshot with an initial configuration.
func NewSnapshot(cfg *Config) *Snapshot {
	s := &Snapshot{}
	s.current.Store(cfg)
	return s
}

// Current returns the most recently stored configuration.
func (s *Snapshot) Current() *Config {
	return s.current.Load()
}

// Swap replaces the configuration and returns the previous one.
func (s *Snapshot) Swap(cfg *Config) *Config {
	return s.current.Swap(cfg)
}
