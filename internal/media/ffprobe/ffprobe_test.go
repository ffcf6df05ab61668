package ffprobe

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const sampleReport = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "hevc",
      "codec_type": "video",
      "codec_tag_string": "hev1",
      "pix_fmt": "yuv420p10le",
      "color_transfer": "smpte2084",
      "avg_frame_rate": "24000/1001",
      "width": 3840,
      "height": 2160
    },
    {
      "index": 1,
      "codec_name": "eac3",
      "codec_type": "audio",
      "channels": 6,
      "bit_rate": "640000",
      "tags": {"language": "eng"}
    },
    {
      "index": 2,
      "codec_name": "subrip",
      "codec_type": "subtitle",
      "tags": {"language": "eng"}
    }
  ],
  "format": {
    "filename": "movie.mp4",
    "nb_streams": 3,
    "duration": "7200.5",
    "size": "8000000000",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

func TestResultAccessors(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleReport), &result); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got := result.DurationSeconds(); got != 7200.5 {
		t.Fatalf("DurationSeconds = %v", got)
	}
	if got := result.SizeBytes(); got != 8_000_000_000 {
		t.Fatalf("SizeBytes = %v", got)
	}
	video, ok := result.VideoStream()
	if !ok || video.CodecName != "hevc" {
		t.Fatalf("VideoStream = %+v ok=%v", video, ok)
	}
	if audio := result.AudioStreams(); len(audio) != 1 || audio[0].Channels != 6 {
		t.Fatalf("AudioStreams = %+v", audio)
	}
	if subs := result.SubtitleStreams(); len(subs) != 1 || subs[0].CodecName != "subrip" {
		t.Fatalf("SubtitleStreams = %+v", subs)
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := map[string]float64{
		"24000/1001": 23.976023976023978,
		"25/1":       25,
		"0/0":        0,
		"":           0,
		"30":         30,
		"x/y":        0,
	}
	for in, want := range cases {
		if got := parseFrameRate(in); got != want {
			t.Fatalf("parseFrameRate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBitDepth(t *testing.T) {
	cases := []struct {
		stream Stream
		want   int
	}{
		{Stream{BitsPerRawSample: "10"}, 10},
		{Stream{PixFmt: "yuv420p10le"}, 10},
		{Stream{PixFmt: "yuv420p12le"}, 12},
		{Stream{PixFmt: "yuv420p"}, 8},
		{Stream{}, 0},
	}
	for _, tc := range cases {
		if got := bitDepth(tc.stream); got != tc.want {
			t.Fatalf("bitDepth(%+v) = %d, want %d", tc.stream, got, tc.want)
		}
	}
}

func TestCodecTagCorrect(t *testing.T) {
	if codecTagCorrect("mp4", Stream{CodecName: "hevc", CodecTag: "hev1"}) {
		t.Fatal("hev1 tag in mp4 should be incorrect")
	}
	if !codecTagCorrect("mp4", Stream{CodecName: "hevc", CodecTag: "hvc1"}) {
		t.Fatal("hvc1 tag in mp4 should be correct")
	}
	if !codecTagCorrect("mkv", Stream{CodecName: "hevc", CodecTag: "hev1"}) {
		t.Fatal("tags outside the mp4 family are not checked")
	}
	if !codecTagCorrect("mp4", Stream{CodecName: "av1", CodecTag: "av01"}) {
		t.Fatal("codecs without an expected tag pass")
	}
}

func TestContainerName(t *testing.T) {
	if got := containerName("mov,mp4,m4a,3gp,3g2,mj2", "/x/movie.mp4"); got != "mp4" {
		t.Fatalf("containerName = %q", got)
	}
	if got := containerName("matroska,webm", "/x/movie.mkv"); got != "mkv" {
		t.Fatalf("containerName = %q", got)
	}
	if got := containerName("matroska,webm", ""); got != "mkv" {
		t.Fatalf("containerName without path = %q", got)
	}
}

func writeBox(t *testing.T, buf []byte, boxType string, payload int) []byte {
	t.Helper()
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[:4], uint32(8+payload))
	copy(header[4:], boxType)
	buf = append(buf, header...)
	return append(buf, make([]byte, payload)...)
}

func TestHasFastStart(t *testing.T) {
	dir := t.TempDir()

	fast := writeBox(t, nil, "ftyp", 16)
	fast = writeBox(t, fast, "moov", 64)
	fast = writeBox(t, fast, "mdat", 32)
	fastPath := filepath.Join(dir, "fast.mp4")
	if err := os.WriteFile(fastPath, fast, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if !hasFastStart(fastPath) {
		t.Fatal("moov-first file should report fast start")
	}

	slow := writeBox(t, nil, "ftyp", 16)
	slow = writeBox(t, slow, "mdat", 32)
	slow = writeBox(t, slow, "moov", 64)
	slowPath := filepath.Join(dir, "slow.mp4")
	if err := os.WriteFile(slowPath, slow, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if hasFastStart(slowPath) {
		t.Fatal("mdat-first file should not report fast start")
	}

	if !hasFastStart(filepath.Join(dir, "missing.mp4")) {
		t.Fatal("unreadable files must not be penalized")
	}
}
