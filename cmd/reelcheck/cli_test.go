package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelcheck/internal/testsupport"
)

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	out, _, err := runCLI(t, "", "config", "validate", "--path", configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration is valid")
}

func TestSubsFindCommand(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Movie (2020).mkv")
	for _, name := range []string{"Movie (2020).mkv", "Movie (2020).srt", "Movie (2020).en.srt", "unrelated.srt"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 1)
	}

	out, _, err := runCLI(t, "", "subs", "find", video)
	if err != nil {
		t.Fatalf("subs find: %v", err)
	}
	requireContains(t, out, "Movie (2020).srt (subrip)")
	requireContains(t, out, "Movie (2020).en.srt")
	if strings.Contains(out, "unrelated.srt") {
		t.Fatalf("unrelated subtitle should not match: %s", out)
	}
}

func TestLibraryAndRootsFlow(t *testing.T) {
	configPath := writeTestConfig(t)
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "Movie.mkv"), 64*1024)

	out, _, err := runCLI(t, configPath, "roots", "add", dir)
	if err != nil {
		t.Fatalf("roots add: %v", err)
	}
	requireContains(t, out, "Added root")

	out, _, err = runCLI(t, configPath, "library", "scan", dir)
	if err != nil {
		t.Fatalf("library scan: %v", err)
	}
	requireContains(t, out, "Registered 1 video files")

	out, _, err = runCLI(t, configPath, "library", "list")
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Movie.mkv")
	requireContains(t, out, "unscored")

	out, _, err = runCLI(t, configPath, "roots", "list")
	if err != nil {
		t.Fatalf("roots list: %v", err)
	}
	requireContains(t, out, "yes")

	out, _, err = runCLI(t, configPath, "roots", "disable", "1")
	if err != nil {
		t.Fatalf("roots disable: %v", err)
	}
	requireContains(t, out, "Disabled root 1")
}

func TestHistoryRematchCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	out, _, err := runCLI(t, configPath, "history", "rematch")
	if err != nil {
		t.Fatalf("history rematch: %v", err)
	}
	requireContains(t, out, "Matched 0, still unmatched 0")
}

func TestHistorySyncWithoutPlaybackConfig(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, _, err := runCLI(t, configPath, "history", "sync"); err == nil {
		t.Fatal("expected error when playback sync is not configured")
	}
}
