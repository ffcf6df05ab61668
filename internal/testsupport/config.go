package testsupport

import (
	"path/filepath"
	"testing"

	"reelcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DatabasePath = filepath.Join(base, "reelcheck.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPlayback enables playback sync against the given server URL.
func WithPlayback(url, apiKey string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Playback.Enabled = true
		cfg.Playback.URL = url
		cfg.Playback.APIKey = apiKey
	}
}

// WithWorkers overrides the batch worker counts.
func WithWorkers(rescore, sync int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workers.Rescore = rescore
		cfg.Workers.Sync = sync
	}
}
