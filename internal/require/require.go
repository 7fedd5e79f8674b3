// Package require implements Component G (spec.md §4.G "Require
// Tracer"): a walk over one module's parsed body collecting every
// require/include call site into a ModuleInfo map, without attempting
// to resolve the path itself — resolution is pkg/resolver's job, once
// the Build Orchestrator has a full module graph to resolve against.
//
// Grounded on the teacher's internal/modules/loader.go package-loading
// walk, but simplified the way SPEC_FULL.md's AST already simplifies
// the problem: ast.RequireStat is emitted directly by the (external)
// parser for `local x = require(...)`/`include(...)` call forms, so
// this tracer never needs loader.go's own `fmt`/`os`/`path/filepath`
// directory-walking logic — that logic now lives in
// pkg/resolver/fsresolver.go, which is the actual filesystem
// consumer of the names this package collects.
package require

import (
	"strings"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/scope"
)

// Trace walks block and every nested block, recording one ModuleInfo
// per RequireStat found (spec.md §4.G: "silent on unresolved paths" —
// a path this package cannot statically read, e.g. a computed string,
// is simply skipped rather than reported as an error; an unresolvable
// *module name* is the orchestrator's concern, not this pass's).
func Trace(block *ast.Block) map[*ast.RequireStat]scope.ModuleInfo {
	out := make(map[*ast.RequireStat]scope.ModuleInfo)
	walkBlock(block, out)
	return out
}

func walkBlock(b *ast.Block, out map[*ast.RequireStat]scope.ModuleInfo) {
	if b == nil {
		return
	}
	for _, stat := range b.Stats {
		walkStat(stat, out)
	}
}

func walkStat(s ast.Stat, out map[*ast.RequireStat]scope.ModuleInfo) {
	switch st := s.(type) {
	case *ast.RequireStat:
		if name, ok := literalPathName(st.PathExpr); ok {
			out[st] = scope.ModuleInfo{Name: name, Optional: st.Tag == "include"}
		}
	case *ast.DoStat:
		walkBlock(st.Body, out)
	case *ast.WhileStat:
		walkBlock(st.Body, out)
	case *ast.RepeatStat:
		walkBlock(st.Body, out)
	case *ast.NumericForStat:
		walkBlock(st.Body, out)
	case *ast.GenericForStat:
		walkBlock(st.Body, out)
	case *ast.IfStat:
		walkBlock(st.Then, out)
		for _, clause := range st.ElseIfs {
			walkBlock(clause.Body, out)
		}
		walkBlock(st.Else, out)
	case *ast.FunctionStat:
		if st.Fn != nil {
			walkBlock(st.Fn.Body, out)
		}
	case *ast.LocalStat:
		for _, v := range st.Values {
			walkExprForNestedFunctions(v, out)
		}
	}
}

// walkExprForNestedFunctions descends into function-literal bodies
// reachable from an expression position (e.g. `local f = function()
// require("x") end`), since a require call nested in a closure still
// needs to be traced.
func walkExprForNestedFunctions(e ast.Expr, out map[*ast.RequireStat]scope.ModuleInfo) {
	if fn, ok := e.(*ast.FunctionExpr); ok {
		walkBlock(fn.Body, out)
	}
}

// literalPathName extracts a module name from a require/include path
// expression when it's a plain string literal — the only form this
// tracer resolves statically.
func literalPathName(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.StringLiteral)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(lit.Value), true
}
