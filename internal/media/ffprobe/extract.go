package ffprobe

import (
	"context"
	"path/filepath"
	"strings"

	"reelcheck/internal/media"
	"reelcheck/internal/services"
)

// Extractor produces media.Record values by probing files with ffprobe.
type Extractor struct {
	Binary string
}

// New constructs an Extractor using the given ffprobe binary name. An empty
// name falls back to "ffprobe" on PATH.
func New(binary string) *Extractor {
	return &Extractor{Binary: binary}
}

// hdrTransfers maps ffprobe color_transfer values to HDR type labels.
var hdrTransfers = map[string]string{
	"smpte2084":    "HDR10",
	"arib-std-b67": "HLG",
}

// mp4Family containers support the fast-start layout.
var mp4Family = map[string]struct{}{
	"mp4": {},
	"m4v": {},
	"mov": {},
}

// Extract probes a file and maps the report to an immutable metadata record.
func (e *Extractor) Extract(ctx context.Context, path string) (media.Record, error) {
	result, err := Inspect(ctx, e.Binary, path)
	if err != nil {
		return media.Record{}, services.Wrap(services.ErrExternalTool, "extract", "probe", path, err)
	}

	container := containerName(result.Format.FormatName, path)
	record := media.Record{
		Path:            path,
		Container:       container,
		CodecTagCorrect: true,
		FastStart:       true,
		FileSize:        result.SizeBytes(),
		DurationSeconds: result.DurationSeconds(),
	}

	if video, ok := result.VideoStream(); ok {
		record.VideoCodec = video.CodecName
		record.Width = video.Width
		record.Height = video.Height
		record.FrameRate = parseFrameRate(video.AvgFrameRate)
		record.BitDepth = bitDepth(video)
		if hdrType, ok := hdrTransfers[strings.ToLower(video.ColorTransfer)]; ok {
			record.HDR = true
			record.HDRType = hdrType
		}
		record.CodecTagCorrect = codecTagCorrect(container, video)
	}

	for _, stream := range result.AudioStreams() {
		record.AudioTracks = append(record.AudioTracks, media.AudioTrack{
			Codec:    stream.CodecName,
			Channels: stream.Channels,
			Language: stream.Tags["language"],
			BitRate:  int64(parseInt(stream.BitRate)),
		})
	}
	for _, stream := range result.SubtitleStreams() {
		record.SubtitleTracks = append(record.SubtitleTracks, media.SubtitleTrack{
			Format:   stream.CodecName,
			Language: stream.Tags["language"],
			Embedded: true,
		})
	}

	if _, ok := mp4Family[container]; ok {
		record.FastStart = hasFastStart(path)
	}
	return record, nil
}

// containerName derives the short container label. The file extension wins
// when present because ffprobe reports muxer aliases ("mov,mp4,m4a,3gp")
// rather than a single name.
func containerName(formatName, path string) string {
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext != "" {
		if ext == "matroska" {
			return "mkv"
		}
		return ext
	}
	first, _, _ := strings.Cut(formatName, ",")
	first = strings.ToLower(strings.TrimSpace(first))
	if first == "matroska" {
		return "mkv"
	}
	return first
}

// expectedCodecTags maps codecs to the tag required inside mp4-family
// containers. Anything else is accepted as-is.
var expectedCodecTags = map[string]string{
	"hevc": "hvc1",
	"h264": "avc1",
}

func codecTagCorrect(container string, video Stream) bool {
	if _, ok := mp4Family[container]; !ok {
		return true
	}
	expected, ok := expectedCodecTags[strings.ToLower(video.CodecName)]
	if !ok {
		return true
	}
	tag := strings.ToLower(strings.TrimSpace(video.CodecTag))
	if tag == "" {
		return true
	}
	return tag == expected
}

func bitDepth(video Stream) int {
	if depth := parseInt(video.BitsPerRawSample); depth > 0 {
		return depth
	}
	pixFmt := strings.ToLower(video.PixFmt)
	switch {
	case strings.Contains(pixFmt, "12"):
		return 12
	case strings.Contains(pixFmt, "10"):
		return 10
	case pixFmt == "":
		return 0
	default:
		return 8
	}
}
