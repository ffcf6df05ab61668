package media

// AudioTrack describes one audio stream in a media file.
type AudioTrack struct {
	Codec    string `json:"codec"`
	Channels int    `json:"channels"`
	Language string `json:"language,omitempty"`
	BitRate  int64  `json:"bit_rate,omitempty"`
}

// SubtitleTrack describes one subtitle stream, embedded or external.
type SubtitleTrack struct {
	Format     string `json:"format"`
	Language   string `json:"language,omitempty"`
	Embedded   bool   `json:"embedded"`
	SourcePath string `json:"source_path,omitempty"`
}

// Record is the technical metadata for a single library file. Track slices
// preserve stream order.
type Record struct {
	Path            string          `json:"path"`
	Container       string          `json:"container"`
	VideoCodec      string          `json:"video_codec"`
	CodecTagCorrect bool            `json:"codec_tag_correct"`
	BitDepth        int             `json:"bit_depth"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	FrameRate       float64         `json:"frame_rate"`
	HDR             bool            `json:"hdr"`
	HDRType         string          `json:"hdr_type,omitempty"`
	FastStart       bool            `json:"fast_start"`
	AudioTracks     []AudioTrack    `json:"audio_tracks,omitempty"`
	SubtitleTracks  []SubtitleTrack `json:"subtitle_tracks,omitempty"`
	FileSize        int64           `json:"file_size"`
	DurationSeconds float64         `json:"duration_seconds"`
}

// HasSurroundAudio reports whether any audio track carries more than two
// channels.
func (r Record) HasSurroundAudio() bool {
	for _, track := range r.AudioTracks {
		if track.Channels > 2 {
			return true
		}
	}
	return false
}

// AverageMbps returns the file's average bitrate in megabits per second, or
// 0 when the duration is unknown.
func (r Record) AverageMbps() float64 {
	if r.DurationSeconds <= 0 {
		return 0
	}
	return float64(r.FileSize) * 8 / r.DurationSeconds / 1_000_000
}

// WithExternalSubtitles returns a copy of the record with external subtitle
// paths appended as subtitle tracks. The receiver is left untouched.
func (r Record) WithExternalSubtitles(format func(path string) string, paths []string) Record {
	if len(paths) == 0 {
		return r
	}
	tracks := make([]SubtitleTrack, 0, len(r.SubtitleTracks)+len(paths))
	tracks = append(tracks, r.SubtitleTracks...)
	for _, path := range paths {
		tracks = append(tracks, SubtitleTrack{
			Format:     format(path),
			Embedded:   false,
			SourcePath: path,
		})
	}
	out := r
	out.SubtitleTracks = tracks
	return out
}
