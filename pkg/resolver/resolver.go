// Package resolver turns a traced require/include path (internal/require)
// into a concrete source file and a per-module config, the two external
// collaborators spec.md §1 names but leaves unimplemented: a real
// filesystem module resolver, and a per-project config file reader.
//
// Grounded on the teacher's internal/modules/loader.go's "one package
// per directory, with a consistent file extension" resolution rule
// (detectPackageExtension/hasSourceFiles), generalized here into an
// interface so internal/frontend never depends on the concrete
// filesystem or YAML-parsing implementation directly.
package resolver

import "github.com/reflectrpteam/luau/internal/config"

// FileResolver turns a require target name (as traced by
// internal/require, relative to the requiring module's directory) into
// the absolute path of the file that should back it, and a content
// hash to key internal/cache's incremental store by.
type FileResolver interface {
	// Resolve returns the absolute source path for name as required
	// from fromDir, along with ok=false if no such module exists.
	Resolve(fromDir, name string) (path string, ok bool)

	// ReadSource returns path's contents and a content hash suitable
	// for internal/cache's clean-at-hash records.
	ReadSource(path string) (content string, contentHash string, err error)
}

// ConfigResolver reads the per-project and per-directory config that
// governs default checking Mode and Limits (spec.md §6 "Hot-comment
// mode selection" falls back to this when a file has no hot comment).
type ConfigResolver interface {
	// ModeFor returns the configured default Mode for the module at
	// dir, and ok=false if no config applies (the caller should then
	// fall back to config.ModeNonstrict).
	ModeFor(dir string) (mode config.Mode, ok bool)
}
