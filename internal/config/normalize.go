package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRating()
	c.normalizeWorkers()
	c.normalizePlayback()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRating() {
	c.Rating.VideoCodecs = normalizeSet(c.Rating.VideoCodecs)
	c.Rating.AudioCodecs = normalizeSet(c.Rating.AudioCodecs)
	c.Rating.Containers = normalizeSet(c.Rating.Containers)
	c.Rating.SubtitleFormats = normalizeSet(c.Rating.SubtitleFormats)
	if c.Rating.MaxBitrateMbps <= 0 {
		c.Rating.MaxBitrateMbps = defaultMaxBitrateMbps
	}
	if c.Rating.LegacyOptimal <= 0 {
		c.Rating.LegacyOptimal = defaultLegacyOptimal
	}
	if c.Rating.LegacyGoodDirect <= 0 {
		c.Rating.LegacyGoodDirect = defaultLegacyGoodDirect
	}
	if c.Rating.LegacyGoodCombined <= 0 {
		c.Rating.LegacyGoodCombined = defaultLegacyGoodCombined
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.Rescore <= 0 {
		c.Workers.Rescore = defaultRescoreWorkers
	}
	if c.Workers.Sync <= 0 {
		c.Workers.Sync = defaultSyncWorkers
	}
}

func (c *Config) normalizePlayback() {
	c.Playback.URL = strings.TrimRight(strings.TrimSpace(c.Playback.URL), "/")
	c.Playback.APIKey = strings.TrimSpace(c.Playback.APIKey)
	if c.Playback.APIKey == "" {
		if value, ok := os.LookupEnv("REELCHECK_PLAYBACK_API_KEY"); ok {
			c.Playback.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Playback.RequestTimeout <= 0 {
		c.Playback.RequestTimeout = defaultPlaybackTimeout
	}
	if c.Playback.PageSize <= 0 {
		c.Playback.PageSize = defaultPlaybackPageSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeSet lowercases, trims, and deduplicates while preserving order.
func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
