package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFilesWalksDirectoriesByExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.luau"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.lua"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := discoverFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 recognized source files, got %d: %v", len(files), files)
	}
}

func TestDiscoverFilesAcceptsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.luau")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := discoverFiles([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("expected [%s], got %v", path, files)
	}
}

func TestFormatDiagnosticPlainWithoutTTY(t *testing.T) {
	// os.Stderr is not a TTY under `go test`, so this exercises the
	// uncolored branch deterministically.
	got := formatDiagnostic("m", "boom")
	if got != "m: boom" {
		t.Fatalf("expected plain formatting under a non-TTY stderr, got %q", got)
	}
}
