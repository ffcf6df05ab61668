package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"reelcheck/internal/media"
)

func writeRecordFile(t *testing.T, record media.Record) string {
	t.Helper()
	data, err := media.EncodeRecord(record)
	if err != nil {
		t.Fatalf("encode record: %v", err)
	}
	path := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

func TestScoreCommandWithRecordFile(t *testing.T) {
	configPath := writeTestConfig(t)
	recordPath := writeRecordFile(t, media.Record{
		Path:            "/library/Movie (2020).mkv",
		Container:       "mkv",
		VideoCodec:      "hevc",
		CodecTagCorrect: true,
		BitDepth:        10,
		HDR:             true,
		FastStart:       true,
		AudioTracks:     []media.AudioTrack{{Codec: "eac3", Channels: 6}},
		FileSize:        9_000_000_000,
		DurationSeconds: 7200,
	})

	out, _, err := runCLI(t, configPath, "score", "--record", recordPath, "--json", "/library/Movie (2020).mkv")
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	var report struct {
		Title          string   `json:"title"`
		Score          int      `json:"score"`
		Classification string   `json:"classification"`
		Issues         []string `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if report.Score != 100 || report.Classification != "Optimal" {
		t.Fatalf("report = %+v", report)
	}
	if report.Title != "Movie" {
		t.Fatalf("title = %q, want normalized display title", report.Title)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
}

func TestScoreCommandReportsIssues(t *testing.T) {
	configPath := writeTestConfig(t)
	recordPath := writeRecordFile(t, media.Record{
		Path:            "/library/Old Movie.webm",
		Container:       "webm",
		VideoCodec:      "vp9",
		CodecTagCorrect: true,
		FastStart:       true,
		FileSize:        1_000_000_000,
		DurationSeconds: 5400,
	})

	out, _, err := runCLI(t, configPath, "score", "--record", recordPath, "/library/Old Movie.webm")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "video codec vp9 is not supported")
	requireContains(t, out, "container webm is not supported")
	requireContains(t, out, "Old Movie")
}

func TestScoreCommandMissingRecordFile(t *testing.T) {
	configPath := writeTestConfig(t)
	_, _, err := runCLI(t, configPath, "score", "--record", "/does/not/exist.json", "/library/x.mkv")
	if err == nil {
		t.Fatal("expected error for missing record file")
	}
}
