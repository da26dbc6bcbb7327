package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	requireContains(t, string(data), "[extraction]")
}

func TestConfigInitRefusesExisting(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "# mine" {
		t.Fatal("existing config must be left untouched")
	}
}

func TestConfigPathPrintsDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	want := filepath.Join(home, ".config", "audiolift", "config.toml")
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestConfigShowReportsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "ffmpeg_binary")
	requireContains(t, out, "continue_on_error   = false")
}

func TestHistoryEmptyJournal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No journaled extractions yet.")
}

func TestExtractFailsWithoutTools(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", "")

	folder := t.TempDir()
	_, err := runCLI(t, "extract", folder)
	if err == nil {
		t.Fatal("expected missing-dependency error with empty PATH")
	}
	requireContains(t, err.Error(), "missing dependency")
}

func TestExtractRequiresFolderArg(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := runCLI(t, "extract"); err == nil {
		t.Fatal("expected argument error")
	}
}
