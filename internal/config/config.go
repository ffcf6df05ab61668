package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"reelcheck/internal/rating"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	DatabasePath string `toml:"database_path"`
	LogDir       string `toml:"log_dir"`
}

// Rating contains the compatibility scoring policy: supported format sets,
// deduction weights, and classification thresholds.
type Rating struct {
	VideoCodecs      []string `toml:"video_codecs"`
	AudioCodecs      []string `toml:"audio_codecs"`
	Containers       []string `toml:"containers"`
	SubtitleFormats  []string `toml:"subtitle_formats"`
	BitDepths        []int    `toml:"bit_depths"`
	MaxBitrateMbps   float64  `toml:"max_bitrate_mbps"`
	OptimalThreshold int      `toml:"optimal_threshold"`
	GoodThreshold    int      `toml:"good_threshold"`

	Weights rating.Weights `toml:"weights"`

	LegacyOptimal      int `toml:"legacy_optimal"`
	LegacyGoodDirect   int `toml:"legacy_good_direct"`
	LegacyGoodCombined int `toml:"legacy_good_combined"`
}

// Workers contains batch concurrency limits.
type Workers struct {
	Rescore int `toml:"rescore"`
	Sync    int `toml:"sync"`
}

// Playback contains configuration for the playback-history server.
type Playback struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"`
	PageSize       int    `toml:"page_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelcheck.
//
// Configuration sections by subsystem:
//   - Paths: database location and log directory
//   - Rating: scoring policy (supported sets, weights, thresholds)
//   - Workers: batch rescore and sync concurrency
//   - Playback: playback-history server connection
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Rating   Rating   `toml:"rating"`
	Workers  Workers  `toml:"workers"`
	Playback Playback `toml:"playback"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and all value sets normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories Load points at. The database
// parent directory must exist before the store opens it.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.DatabasePath)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used for media probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// RatingPolicy builds the immutable scoring policy from the rating section.
func (c *Config) RatingPolicy() rating.Policy {
	return rating.Policy{
		VideoCodecs:      append([]string(nil), c.Rating.VideoCodecs...),
		AudioCodecs:      append([]string(nil), c.Rating.AudioCodecs...),
		Containers:       append([]string(nil), c.Rating.Containers...),
		SubtitleFormats:  append([]string(nil), c.Rating.SubtitleFormats...),
		BitDepths:        append([]int(nil), c.Rating.BitDepths...),
		Weights:          c.Rating.Weights,
		MaxBitrateMbps:   c.Rating.MaxBitrateMbps,
		OptimalThreshold: c.Rating.OptimalThreshold,
		GoodThreshold:    c.Rating.GoodThreshold,
	}
}

// LegacyThresholds builds the playback-count classification thresholds.
func (c *Config) LegacyThresholds() rating.LegacyThresholds {
	return rating.LegacyThresholds{
		Optimal:      c.Rating.LegacyOptimal,
		GoodDirect:   c.Rating.LegacyGoodDirect,
		GoodCombined: c.Rating.LegacyGoodCombined,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
