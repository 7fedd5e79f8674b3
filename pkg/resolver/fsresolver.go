package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reflectrpteam/luau/internal/config"
)

// FSResolver is the real filesystem FileResolver, grounded directly on
// internal/modules/loader.go's detectPackageExtension/hasSourceFiles
// package-directory convention: a directory is one package, and the
// file named exactly "<dirname><ext>" is its entry file if present,
// otherwise the first recognized-extension file wins by lexical order.
type FSResolver struct {
	// Extensions overrides config.SourceFileExtensions when non-nil,
	// so a project can recognize a different source suffix set.
	Extensions []string
}

// NewFSResolver returns a resolver using config.SourceFileExtensions.
func NewFSResolver() *FSResolver {
	return &FSResolver{Extensions: config.SourceFileExtensions}
}

func (r *FSResolver) extensions() []string {
	if r.Extensions != nil {
		return r.Extensions
	}
	return config.SourceFileExtensions
}

// Resolve implements FileResolver.Resolve. name is resolved relative to
// fromDir first (a "./foo" or "../foo" require), then as a bare module
// name searched from fromDir upward — mirroring loader.go's own
// absolute-path normalization, simplified since this resolver never
// needs loader.go's bundle/virtual-package fallbacks (those are
// internal/definitions' concern here, not the filesystem resolver's).
func (r *FSResolver) Resolve(fromDir, name string) (string, bool) {
	if strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		return r.resolvePath(filepath.Join(fromDir, name))
	}
	dir := fromDir
	for {
		if path, ok := r.resolvePath(filepath.Join(dir, name)); ok {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// resolvePath treats target as either a direct file path (missing its
// extension) or a package directory, and returns the entry file
// detectPackageExtension would pick.
func (r *FSResolver) resolvePath(target string) (string, bool) {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, true
	}
	for _, ext := range r.extensions() {
		if info, err := os.Stat(target + ext); err == nil && !info.IsDir() {
			return target + ext, true
		}
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return r.packageEntryFile(target)
	}
	return "", false
}

// packageEntryFile implements loader.go's detectPackageExtension +
// entry-file convention: prefer "<dirname><ext>", falling back to the
// first recognized-extension file in lexical order.
func (r *FSResolver) packageEntryFile(dir string) (string, bool) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	dirName := filepath.Base(dir)

	for _, ext := range r.extensions() {
		mainFile := dirName + ext
		for _, f := range files {
			if !f.IsDir() && f.Name() == mainFile {
				return filepath.Join(dir, f.Name()), true
			}
		}
	}

	var candidates []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		for _, ext := range r.extensions() {
			if strings.HasSuffix(f.Name(), ext) {
				candidates = append(candidates, f.Name())
				break
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), true
}

// ReadSource implements FileResolver.ReadSource, hashing with sha256
// rather than a weaker checksum since the hash doubles as
// internal/cache's incremental-validity key — a collision there would
// silently serve a stale CheckResult.
func (r *FSResolver) ReadSource(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	sum := sha256.Sum256(data)
	return string(data), hex.EncodeToString(sum[:]), nil
}
