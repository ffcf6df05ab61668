package rating

import (
	"fmt"
	"strings"

	"reelcheck/internal/media"
)

// Classification is the three-tier compatibility verdict.
type Classification int

const (
	ClassificationPoor Classification = iota
	ClassificationGood
	ClassificationOptimal
)

// String returns the display label.
func (c Classification) String() string {
	switch c {
	case ClassificationOptimal:
		return "Optimal"
	case ClassificationGood:
		return "Good"
	case ClassificationPoor:
		return "Poor"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// Outcome is the result of scoring one record. A fresh value is produced by
// every Score call and never mutated afterward.
type Outcome struct {
	Score           int
	Classification  Classification
	Issues          []string
	Recommendations []string
}

// fastStartContainers are container formats where the fast-start layout is
// meaningful; other containers are never penalized for it.
var fastStartContainers = map[string]struct{}{
	"mp4": {},
	"m4v": {},
	"mov": {},
}

// Score rates a metadata record against a policy. The score starts at 100
// and each triggered condition subtracts its configured weight, clamped at
// zero. Conditions are evaluated in a fixed order so the issue and
// recommendation lists come out in the same order on every run.
func Score(record media.Record, policy Policy) Outcome {
	score := 100
	var issues, recommendations []string

	deduct := func(category Category, issue, recommendation string) {
		score -= policy.Weight(category)
		if score < 0 {
			score = 0
		}
		issues = append(issues, issue)
		recommendations = append(recommendations, recommendation)
	}

	if !policy.SupportsVideoCodec(record.VideoCodec) {
		deduct(CategoryVideoCodec,
			fmt.Sprintf("video codec %s is not supported", orUnknown(record.VideoCodec)),
			fmt.Sprintf("transcode video to %s", firstOr(policy.VideoCodecs, "a supported codec")))
	}
	if !policy.SupportsContainer(record.Container) {
		deduct(CategoryContainer,
			fmt.Sprintf("container %s is not supported", orUnknown(record.Container)),
			fmt.Sprintf("remux into %s", firstOr(policy.Containers, "a supported container")))
	}
	if unsupported, codec := hasUnsupportedAudio(record, policy); unsupported {
		deduct(CategoryAudioCodec,
			fmt.Sprintf("audio codec %s is not supported", orUnknown(codec)),
			fmt.Sprintf("transcode audio to %s", firstOr(policy.AudioCodecs, "a supported codec")))
	}
	if unsupported, format := hasUnsupportedSubtitle(record, policy); unsupported {
		deduct(CategorySubtitleFormat,
			fmt.Sprintf("subtitle format %s is not supported", orUnknown(format)),
			fmt.Sprintf("convert subtitles to %s", firstOr(policy.SubtitleFormats, "a supported format")))
	}
	if !policy.SupportsBitDepth(record.BitDepth) {
		deduct(CategoryBitDepth,
			fmt.Sprintf("bit depth %d is not supported", record.BitDepth),
			"re-encode at a supported bit depth")
	}
	if !record.CodecTagCorrect {
		deduct(CategoryCodecTag,
			"video codec tag does not match the codec",
			"rewrite the codec tag without re-encoding")
	}
	if !record.HDR {
		deduct(CategoryHDR,
			"video is SDR",
			"prefer an HDR version of this title when available")
	}
	if !record.HasSurroundAudio() {
		deduct(CategorySurroundSound,
			"no surround audio track",
			"add a surround (5.1 or better) audio track when available")
	}
	if mbps := record.AverageMbps(); mbps > policy.MaxBitrateMbps {
		deduct(CategoryHighBitrate,
			fmt.Sprintf("average bitrate %.1f Mbps exceeds the %.1f Mbps limit", mbps, policy.MaxBitrateMbps),
			"re-encode at a lower bitrate")
	}
	if fastStartCapable(record.Container) && !record.FastStart {
		deduct(CategoryFastStart,
			"container supports fast start but the index is at the end of the file",
			"remux with fast start enabled")
	}

	return Outcome{
		Score:           score,
		Classification:  Classify(score, policy),
		Issues:          issues,
		Recommendations: recommendations,
	}
}

// Classify maps a score onto the three-tier classification using the
// policy's thresholds.
func Classify(score int, policy Policy) Classification {
	switch {
	case score >= policy.OptimalThreshold:
		return ClassificationOptimal
	case score >= policy.GoodThreshold:
		return ClassificationGood
	default:
		return ClassificationPoor
	}
}

// hasUnsupportedAudio checks the record once, not per track: a single
// deduction applies no matter how many tracks are affected. The first
// offending codec is reported.
func hasUnsupportedAudio(record media.Record, policy Policy) (bool, string) {
	for _, track := range record.AudioTracks {
		if !policy.SupportsAudioCodec(track.Codec) {
			return true, track.Codec
		}
	}
	return false, ""
}

func hasUnsupportedSubtitle(record media.Record, policy Policy) (bool, string) {
	for _, track := range record.SubtitleTracks {
		if !policy.SupportsSubtitleFormat(track.Format) {
			return true, track.Format
		}
	}
	return false, ""
}

func fastStartCapable(container string) bool {
	_, ok := fastStartContainers[strings.ToLower(container)]
	return ok
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	return value
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}
