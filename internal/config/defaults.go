package config

import "reelcheck/internal/rating"

const (
	defaultDatabasePath       = "~/.local/share/reelcheck/reelcheck.db"
	defaultLogDir             = "~/.local/share/reelcheck/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMaxBitrateMbps     = 40.0
	defaultOptimalThreshold   = 90
	defaultGoodThreshold      = 60
	defaultRescoreWorkers     = 2
	defaultSyncWorkers        = 8
	defaultPlaybackTimeout    = 30
	defaultPlaybackPageSize   = 200
	defaultLegacyOptimal      = 8
	defaultLegacyGoodDirect   = 5
	defaultLegacyGoodCombined = 8
)

// Default returns a Config populated with repository defaults. The supported
// format sets track what mainstream clients direct-play without transcoding.
func Default() Config {
	return Config{
		Paths: Paths{
			DatabasePath: defaultDatabasePath,
			LogDir:       defaultLogDir,
		},
		Rating: Rating{
			VideoCodecs:      []string{"hevc", "h264", "av1"},
			AudioCodecs:      []string{"aac", "ac3", "eac3", "opus", "flac"},
			Containers:       []string{"mkv", "mp4"},
			SubtitleFormats:  []string{"subrip", "srt", "ass", "webvtt"},
			BitDepths:        []int{8, 10},
			MaxBitrateMbps:   defaultMaxBitrateMbps,
			OptimalThreshold: defaultOptimalThreshold,
			GoodThreshold:    defaultGoodThreshold,
			Weights: rating.Weights{
				UnsupportedVideoCodec:     30,
				UnsupportedContainer:      20,
				UnsupportedAudioCodec:     15,
				UnsupportedSubtitleFormat: 5,
				UnsupportedBitDepth:       10,
				IncorrectCodecTag:         10,
				HDR:                       8,
				SurroundSound:             3,
				HighBitrate:               10,
				FastStart:                 5,
			},
			LegacyOptimal:      defaultLegacyOptimal,
			LegacyGoodDirect:   defaultLegacyGoodDirect,
			LegacyGoodCombined: defaultLegacyGoodCombined,
		},
		Workers: Workers{
			Rescore: defaultRescoreWorkers,
			Sync:    defaultSyncWorkers,
		},
		Playback: Playback{
			RequestTimeout: defaultPlaybackTimeout,
			PageSize:       defaultPlaybackPageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
