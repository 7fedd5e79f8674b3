package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRelativePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "util.luau")
	if err := os.WriteFile(target, []byte("return {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFSResolver()
	path, ok := r.Resolve(dir, "./util")
	if !ok {
		t.Fatalf("expected ./util to resolve")
	}
	if path != target {
		t.Fatalf("expected %s, got %s", target, path)
	}
}

func TestResolvePackageDirectoryEntryFile(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "mylib")
	if err := os.Mkdir(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(pkgDir, "mylib.luau")
	other := filepath.Join(pkgDir, "helper.luau")
	if err := os.WriteFile(entry, []byte("return {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(other, []byte("return {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFSResolver()
	path, ok := r.Resolve(dir, "./mylib")
	if !ok {
		t.Fatalf("expected ./mylib to resolve")
	}
	if path != entry {
		t.Fatalf("expected the dirname-matching entry file %s, got %s", entry, path)
	}
}

func TestResolveUpwardSearchForBareName(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	shared := filepath.Join(root, "shared.luau")
	if err := os.WriteFile(shared, []byte("return {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFSResolver()
	path, ok := r.Resolve(sub, "shared")
	if !ok {
		t.Fatalf("expected an upward search to find shared.luau")
	}
	if path != shared {
		t.Fatalf("expected %s, got %s", shared, path)
	}
}

func TestResolveMissingModuleFails(t *testing.T) {
	dir := t.TempDir()
	r := NewFSResolver()
	if _, ok := r.Resolve(dir, "./nope"); ok {
		t.Fatalf("expected ./nope to fail to resolve")
	}
}

func TestReadSourceHashIsStable(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.luau")
	if err := os.WriteFile(target, []byte("return 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFSResolver()
	_, h1, err := r.ReadSource(target)
	if err != nil {
		t.Fatal(err)
	}
	_, h2, err := r.ReadSource(target)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("expected a stable content hash, got %s then %s", h1, h2)
	}
}
