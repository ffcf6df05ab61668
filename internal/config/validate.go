package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRating(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRating() error {
	if len(c.Rating.VideoCodecs) == 0 {
		return errors.New("rating.video_codecs must include at least one codec")
	}
	if len(c.Rating.Containers) == 0 {
		return errors.New("rating.containers must include at least one container")
	}
	for _, depth := range c.Rating.BitDepths {
		if depth <= 0 {
			return fmt.Errorf("rating.bit_depths entry %d must be positive", depth)
		}
	}
	if err := c.RatingPolicy().Validate(); err != nil {
		return fmt.Errorf("rating policy: %w", err)
	}
	if c.Rating.LegacyGoodCombined < c.Rating.LegacyGoodDirect {
		return errors.New("rating.legacy_good_combined must be >= rating.legacy_good_direct")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if !c.Playback.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Playback.URL) == "" {
		return errors.New("playback.url must be set when playback.enabled is true")
	}
	if strings.TrimSpace(c.Playback.APIKey) == "" {
		return errors.New("playback.api_key must be set when playback.enabled is true (or set REELCHECK_PLAYBACK_API_KEY)")
	}
	return nil
}

func (c *Config) validateWorkers() error {
	for key, value := range map[string]int{
		"workers.rescore":          c.Workers.Rescore,
		"workers.sync":             c.Workers.Sync,
		"playback.request_timeout": c.Playback.RequestTimeout,
		"playback.page_size":       c.Playback.PageSize,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
