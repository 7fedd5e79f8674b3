// Package frontend implements Component H (spec.md §4.H "Build
// Orchestrator"): the module-graph-wide state machine that decides
// which modules need (re)checking, in what order, and records the
// result each view (Normal vs. Strict-for-autocomplete) produces.
//
// Grounded on the teacher's internal/pipeline.Pipeline (a named
// sequence of Processor stages run over one shared context) for the
// per-module Trace-requires -> Check staging, and on
// internal/modules/loader.go's package-loading contract (a module is
// loaded once, cached, and re-entrant loads return the cached result)
// for the dirty-bit/cache-hit logic — generalized from "load once per
// process" into "load once per (module, view)" with explicit
// invalidation, so a changed file invalidates only what depends on it.
package frontend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/check"
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/require"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/types"
)

// View distinguishes the two independent checking passes spec.md §4.H
// describes: the Normal (diagnostics-producing) pass, and a Strict pass
// kept solely to drive autocomplete with stricter inference even in a
// --!nonstrict file.
type View int

const (
	ViewNormal View = iota
	ViewStrict
)

// State is one (module, view)'s position in the per-view state machine
// (spec.md §4.H "Unknown -> Parsed -> Checked").
type State int

const (
	StateUnknown State = iota
	StateParsed
	StateChecked
)

// Source is a registered module's parsed program plus its
// syntactically-traced requires, computed once at registration time so
// the cycle detector and the dependency walk never re-parse or re-trace
// per Check call.
type Source struct {
	Name     string
	Program  *ast.Program
	requires map[*ast.RequireStat]scope.ModuleInfo

	// ContentHash, if set, lets Check consult Cache before running the
	// validator at all: a hit means this exact content was already
	// checked clean under this view in a prior process. Left empty, the
	// cache is never consulted for this module (spec.md §4.H: the
	// sqlite store is keyed by content hash specifically so a changed
	// file can never read back a stale clean verdict).
	ContentHash string
}

// entry is one module's per-view bookkeeping.
type entry struct {
	state   State
	module  *scope.Module
	reverse map[string]bool // modules whose check depended on this one
}

// Frontend is the Build Orchestrator. One Frontend instance owns every
// module in one project's graph, across both views, guarded by a single
// mutex — spec.md §5: "module-result maps are mutex-guarded; arenas are
// not shared across goroutines concurrently", so the mutex here
// protects only the maps (entry lookup/insert/dirty-marking), never an
// in-progress Validator walk, which owns its module's arena alone.
type Frontend struct {
	mu      sync.Mutex
	sources map[string]*Source
	views   [2]map[string]*entry

	flags  config.FeatureFlags
	limits config.Limits

	// Resolve looks up another registered module's exported type for a
	// traced require target; wired to Check below to satisfy each
	// Validator's RequireResolver hook. Left nil, every require resolves
	// to "not found" and the checker falls back to Error/Any silently
	// (spec.md §4.G).
	Resolve func(info scope.ModuleInfo) (*types.Type, bool)

	// Dispatch, if set, lets the caller run independent module checks
	// concurrently (spec.md §4.H "dispatcher-hook-based optional
	// worker-pool parallelism"); nil means CheckAll runs them
	// sequentially on the calling goroutine.
	Dispatch func(jobs []func())

	// Cache records, across process invocations, the content hash each
	// (module, view) was last checked clean at (internal/cache,
	// sqlite-backed); nil disables persistence and every Check starts
	// cold.
	Cache Cache

	// Logger receives a line from Check on a cache hit or a detected cycle
	// and per MarkDirty; never nil after New (defaults to NewStdLogger).
	Logger Logger
}

// Cache is the subset of internal/cache's sqlite-backed store the
// orchestrator needs; kept as an interface here so internal/frontend
// never imports database/sql or modernc.org/sqlite directly.
type Cache interface {
	Get(module string, view int, contentHash string) (ok bool)
	Put(module string, view int, contentHash string)
}

func New(flags config.FeatureFlags, limits config.Limits) *Frontend {
	return &Frontend{
		sources: make(map[string]*Source),
		views:   [2]map[string]*entry{make(map[string]*entry), make(map[string]*entry)},
		flags:   flags,
		limits:  limits,
		Logger:  NewStdLogger(),
	}
}

// AddSource registers (or replaces) a module's parsed source, tracing
// its requires up front and marking it and every reverse-dependent
// module dirty in both views.
func (f *Frontend) AddSource(name string, program *ast.Program) {
	f.AddSourceWithHash(name, program, "")
}

// AddSourceWithHash is AddSource plus a content hash (from
// pkg/resolver.FileResolver.ReadSource) that gates the sqlite-backed
// Cache: Check will skip re-running the validator entirely when this
// exact hash was last recorded clean for (name, view).
func (f *Frontend) AddSourceWithHash(name string, program *ast.Program, contentHash string) {
	var requires map[*ast.RequireStat]scope.ModuleInfo
	if program != nil {
		requires = require.Trace(program.Body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[name] = &Source{Name: name, Program: program, requires: requires, ContentHash: contentHash}
	f.markDirtyLocked(name)
}

// MarkDirty resets name's state (in both views) back to Unknown and
// recurses into every module whose last check depended on it (spec.md
// §4.H "markDirty w/ reverse-dependency walk"), so a changed leaf
// module forces every transitive importer to recheck, without the
// caller having to compute the importer set itself. AddSource/
// AddSourceWithHash call this automatically; exported so internal/rpc
// can expose it directly as an RPC without re-registering a source.
func (f *Frontend) MarkDirty(name string) {
	if f.Logger != nil {
		f.Logger.Printf("frontend: marking %q dirty", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markDirtyLocked(name)
}

func (f *Frontend) markDirtyLocked(name string) {
	seen := map[string]bool{}
	var walk func(string)
	walk = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		for _, view := range f.views {
			if e, ok := view[n]; ok {
				e.state = StateUnknown
				for dependent := range e.reverse {
					walk(dependent)
				}
			}
		}
	}
	walk(name)
}

// Request is one check call's correlation context (spec.md §9.5 "uuid
// request correlation"): every diagnostic batch returned from Check
// carries the request ID it was produced under, so a CLI or RPC caller
// can match a response back to the call that triggered it even when
// Dispatch runs several checks concurrently.
type Request struct {
	ID     string
	Module string
	View   View
}

// NewRequest stamps a fresh request ID for module/view.
func NewRequest(module string, view View) Request {
	return Request{ID: uuid.NewString(), Module: module, View: view}
}

// Result is one module check's outcome.
type Result struct {
	Request Request
	Module  *scope.Module
	Errors  []*diagnostics.TypeError
}

// Check runs (or returns the cached result for) one module under one
// view. Requires are resolved against sibling modules already
// registered on this Frontend via Resolve (spec.md §4.G/H ordering:
// requires are traced ahead of time, so Check never needs to parse a
// dependency to learn its name, only to learn its exported type, which
// Resolve supplies once that dependency has itself been checked).
func (f *Frontend) Check(req Request) (*Result, error) {
	f.mu.Lock()
	viewMap := f.views[req.View]
	e, ok := viewMap[req.Module]
	if !ok {
		e = &entry{reverse: map[string]bool{}}
		viewMap[req.Module] = e
	}
	if e.state == StateChecked {
		m := e.module
		f.mu.Unlock()
		return &Result{Request: req, Module: m, Errors: m.Errors.Errors()}, nil
	}
	src, ok := f.sources[req.Module]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("frontend: unknown module %q", req.Module)
	}

	if f.Cache != nil && src.ContentHash != "" && f.Cache.Get(req.Module, int(req.View), src.ContentHash) {
		if f.Logger != nil {
			f.Logger.Printf("frontend: cache hit for %q (request %s)", req.Module, req.ID)
		}
		module := scope.NewModule(req.Module, req.Module, src.Program)
		module.Requires = src.requires
		module.ContentHash = src.ContentHash
		f.mu.Lock()
		e.state = StateChecked
		e.module = module
		f.mu.Unlock()
		return &Result{Request: req, Module: module, Errors: nil}, nil
	}

	cycle := f.detectCycle(req.Module, map[string]bool{})
	module := scope.NewModule(req.Module, req.Module, src.Program)
	if len(cycle) > 1 {
		if f.Logger != nil {
			f.Logger.Errorf("frontend: cyclic dependency detected for %q: %v", req.Module, cycle)
		}
		module.Errors.Add(diagnostics.New(module.Program.Pos(), module.Name, diagnostics.Data{
			Kind: diagnostics.KindModuleHasCyclicDependency, CycleModules: cycle,
		}))
	}
	module.Requires = src.requires

	// Record this module as a reverse-dependent of each of its
	// dependencies, so a later markDirty on any of them reaches back
	// here too.
	f.mu.Lock()
	for _, info := range src.requires {
		if dep, ok := viewMap[info.Name]; ok {
			dep.reverse[req.Module] = true
		} else {
			viewMap[info.Name] = &entry{reverse: map[string]bool{req.Module: true}}
		}
	}
	f.mu.Unlock()

	module.ContentHash = src.ContentHash

	v := check.New(module, f.flags, f.limits)
	v.RequireResolver = f.Resolve
	v.Check()

	if f.Cache != nil && src.ContentHash != "" && module.Errors.Len() == 0 {
		f.Cache.Put(req.Module, int(req.View), src.ContentHash)
	}

	f.mu.Lock()
	e.state = StateChecked
	e.module = module
	f.mu.Unlock()

	return &Result{Request: req, Module: module, Errors: module.Errors.Errors()}, nil
}

// detectCycle returns the strongly-connected cycle containing name, if
// any, by a simple DFS over the registered sources' traced require
// graph (spec.md §4.H "SCC-based cycle detection"). A module with no
// requires, or whose requires never loop back, returns nil.
func (f *Frontend) detectCycle(name string, visiting map[string]bool) []string {
	if visiting[name] {
		return []string{name}
	}
	visiting[name] = true
	defer delete(visiting, name)

	f.mu.Lock()
	src, ok := f.sources[name]
	f.mu.Unlock()
	if !ok {
		return nil
	}
	for _, info := range src.requires {
		if path := f.detectCycle(info.Name, visiting); path != nil {
			return append([]string{name}, path...)
		}
	}
	return nil
}

// LookupChecked returns the last-Checked module record for name under
// view, for a caller (e.g. cmd/luaucheck's require resolver) that needs
// to read a dependency's exported surface once it has been checked,
// without itself running or re-running Check.
func (f *Frontend) LookupChecked(name string, view View) (*scope.Module, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.views[view][name]
	if !ok || e.state != StateChecked {
		return nil, false
	}
	return e.module, true
}

// CheckAll runs Check for every registered module under view, using
// Dispatch for independent module checks when set.
func (f *Frontend) CheckAll(view View) []*Result {
	f.mu.Lock()
	names := make([]string, 0, len(f.sources))
	for n := range f.sources {
		names = append(names, n)
	}
	f.mu.Unlock()
	sort.Strings(names)

	results := make([]*Result, len(names))
	if f.Dispatch == nil {
		for i, n := range names {
			r, err := f.Check(NewRequest(n, view))
			if err == nil {
				results[i] = r
			}
		}
		return results
	}

	jobs := make([]func(), len(names))
	for i, n := range names {
		i, n := i, n
		jobs[i] = func() {
			r, err := f.Check(NewRequest(n, view))
			if err == nil {
				results[i] = r
			}
		}
	}
	f.Dispatch(jobs)
	return results
}
