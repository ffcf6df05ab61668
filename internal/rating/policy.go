package rating

import (
	"fmt"
	"strings"

	"reelcheck/internal/services"
)

// Category identifies one scoring deduction. Categories are a closed enum;
// every switch over them is exhaustive so a new category cannot be added
// without the compiler pointing at the places that must handle it.
type Category int

const (
	CategoryVideoCodec Category = iota
	CategoryContainer
	CategoryAudioCodec
	CategorySubtitleFormat
	CategoryBitDepth
	CategoryCodecTag
	CategoryHDR
	CategorySurroundSound
	CategoryHighBitrate
	CategoryFastStart
)

// String returns the stable label used in logs and CLI output.
func (c Category) String() string {
	switch c {
	case CategoryVideoCodec:
		return "unsupported_video_codec"
	case CategoryContainer:
		return "unsupported_container"
	case CategoryAudioCodec:
		return "unsupported_audio_codec"
	case CategorySubtitleFormat:
		return "unsupported_subtitle_format"
	case CategoryBitDepth:
		return "unsupported_bit_depth"
	case CategoryCodecTag:
		return "incorrect_codec_tag"
	case CategoryHDR:
		return "sdr_source"
	case CategorySurroundSound:
		return "no_surround_audio"
	case CategoryHighBitrate:
		return "high_bitrate"
	case CategoryFastStart:
		return "no_fast_start"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Weights holds the score deduction per category.
type Weights struct {
	UnsupportedVideoCodec     int `toml:"unsupported_video_codec"`
	UnsupportedContainer      int `toml:"unsupported_container"`
	UnsupportedAudioCodec     int `toml:"unsupported_audio_codec"`
	UnsupportedSubtitleFormat int `toml:"unsupported_subtitle_format"`
	UnsupportedBitDepth       int `toml:"unsupported_bit_depth"`
	IncorrectCodecTag         int `toml:"incorrect_codec_tag"`
	HDR                       int `toml:"hdr"`
	SurroundSound             int `toml:"surround_sound"`
	HighBitrate               int `toml:"high_bitrate"`
	FastStart                 int `toml:"fast_start"`
}

// Policy is the immutable rating configuration for one batch. Supported
// value sets are matched case-insensitively.
type Policy struct {
	VideoCodecs      []string
	AudioCodecs      []string
	Containers       []string
	SubtitleFormats  []string
	BitDepths        []int
	Weights          Weights
	MaxBitrateMbps   float64
	OptimalThreshold int
	GoodThreshold    int
}

// Validate checks the policy invariants. Violations surface at load time and
// are never silently corrected.
func (p Policy) Validate() error {
	if p.OptimalThreshold < p.GoodThreshold {
		return services.Wrap(services.ErrValidation, "policy", "validate",
			fmt.Sprintf("optimal threshold %d must be >= good threshold %d", p.OptimalThreshold, p.GoodThreshold), nil)
	}
	if p.OptimalThreshold < 0 || p.OptimalThreshold > 100 {
		return services.Wrap(services.ErrValidation, "policy", "validate",
			fmt.Sprintf("optimal threshold %d must be between 0 and 100", p.OptimalThreshold), nil)
	}
	if p.GoodThreshold < 0 {
		return services.Wrap(services.ErrValidation, "policy", "validate",
			fmt.Sprintf("good threshold %d must be >= 0", p.GoodThreshold), nil)
	}
	if p.MaxBitrateMbps <= 0 {
		return services.Wrap(services.ErrValidation, "policy", "validate",
			fmt.Sprintf("max bitrate %.2f Mbps must be positive", p.MaxBitrateMbps), nil)
	}
	for category, weight := range map[Category]int{
		CategoryVideoCodec:     p.Weights.UnsupportedVideoCodec,
		CategoryContainer:      p.Weights.UnsupportedContainer,
		CategoryAudioCodec:     p.Weights.UnsupportedAudioCodec,
		CategorySubtitleFormat: p.Weights.UnsupportedSubtitleFormat,
		CategoryBitDepth:       p.Weights.UnsupportedBitDepth,
		CategoryCodecTag:       p.Weights.IncorrectCodecTag,
		CategoryHDR:            p.Weights.HDR,
		CategorySurroundSound:  p.Weights.SurroundSound,
		CategoryHighBitrate:    p.Weights.HighBitrate,
		CategoryFastStart:      p.Weights.FastStart,
	} {
		if weight < 0 {
			return services.Wrap(services.ErrValidation, "policy", "validate",
				fmt.Sprintf("weight for %s must not be negative", category), nil)
		}
	}
	return nil
}

// Weight returns the deduction for a category.
func (p Policy) Weight(c Category) int {
	switch c {
	case CategoryVideoCodec:
		return p.Weights.UnsupportedVideoCodec
	case CategoryContainer:
		return p.Weights.UnsupportedContainer
	case CategoryAudioCodec:
		return p.Weights.UnsupportedAudioCodec
	case CategorySubtitleFormat:
		return p.Weights.UnsupportedSubtitleFormat
	case CategoryBitDepth:
		return p.Weights.UnsupportedBitDepth
	case CategoryCodecTag:
		return p.Weights.IncorrectCodecTag
	case CategoryHDR:
		return p.Weights.HDR
	case CategorySurroundSound:
		return p.Weights.SurroundSound
	case CategoryHighBitrate:
		return p.Weights.HighBitrate
	case CategoryFastStart:
		return p.Weights.FastStart
	default:
		return 0
	}
}

// SupportsVideoCodec reports whether a codec is in the supported set.
func (p Policy) SupportsVideoCodec(codec string) bool {
	return containsFold(p.VideoCodecs, codec)
}

// SupportsAudioCodec reports whether a codec is in the supported set.
func (p Policy) SupportsAudioCodec(codec string) bool {
	return containsFold(p.AudioCodecs, codec)
}

// SupportsContainer reports whether a container is in the supported set.
func (p Policy) SupportsContainer(container string) bool {
	return containsFold(p.Containers, container)
}

// SupportsSubtitleFormat reports whether a subtitle format is in the
// supported set.
func (p Policy) SupportsSubtitleFormat(format string) bool {
	return containsFold(p.SubtitleFormats, format)
}

// SupportsBitDepth reports whether a bit depth is in the supported set.
// Depth 0 means the probe could not determine it; unknown depths are not
// penalized.
func (p Policy) SupportsBitDepth(depth int) bool {
	if depth == 0 {
		return true
	}
	for _, supported := range p.BitDepths {
		if supported == depth {
			return true
		}
	}
	return false
}

func containsFold(set []string, value string) bool {
	for _, candidate := range set {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}
