package cache

import (
	"path/filepath"
	"testing"
)

func TestGetMissesUntilPut(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Get("a", 0, "hash1") {
		t.Fatalf("expected a cold miss")
	}
	s.Put("a", 0, "hash1")
	if !s.Get("a", 0, "hash1") {
		t.Fatalf("expected a hit after Put")
	}
}

func TestGetMissesOnHashChange(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Put("a", 0, "hash1")
	if s.Get("a", 0, "hash2") {
		t.Fatalf("expected a miss for a different content hash")
	}
}

func TestViewsAreIndependent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Put("a", 0, "hash1")
	if s.Get("a", 1, "hash1") {
		t.Fatalf("expected view 1 to be independent of view 0's cached entry")
	}
}

func TestInvalidateDropsAllViews(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Put("a", 0, "hash1")
	s.Put("a", 1, "hash1")
	s.Invalidate("a")
	if s.Get("a", 0, "hash1") || s.Get("a", 1, "hash1") {
		t.Fatalf("expected Invalidate to clear every view")
	}
}
