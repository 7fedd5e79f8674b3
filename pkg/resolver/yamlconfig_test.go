package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reflectrpteam/luau/internal/config"
)

func TestYAMLConfigResolverDefaultMode(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".luaucheck.yml")
	if err := os.WriteFile(cfgPath, []byte("mode: strict\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewYAMLConfigResolver(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	mode, ok := r.ModeFor(dir)
	if !ok || mode != config.ModeStrict {
		t.Fatalf("expected strict default, got %v (%v)", mode, ok)
	}
}

func TestYAMLConfigResolverDirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".luaucheck.yml")
	contents := "mode: nonstrict\noverrides:\n  legacy: nocheck\n"
	if err := os.WriteFile(cfgPath, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewYAMLConfigResolver(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	mode, ok := r.ModeFor(filepath.Join(dir, "legacy"))
	if !ok || mode != config.ModeNoCheck {
		t.Fatalf("expected nocheck override, got %v (%v)", mode, ok)
	}

	mode, ok = r.ModeFor(filepath.Join(dir, "other"))
	if !ok || mode != config.ModeNonstrict {
		t.Fatalf("expected project default for an unoverridden dir, got %v (%v)", mode, ok)
	}
}

func TestYAMLConfigResolverMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	r, err := NewYAMLConfigResolver(filepath.Join(dir, ".luaucheck.yml"))
	if err != nil {
		t.Fatalf("missing config file should not error, got %v", err)
	}
	if _, ok := r.ModeFor(dir); ok {
		t.Fatalf("expected ok=false with no config file present")
	}
}
