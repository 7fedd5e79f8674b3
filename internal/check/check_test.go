package check

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/scope"
)

func name(s string) *ast.Name { return &ast.Name{Value: s} }

func numLit(v float64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: v} }
func strLit(s string) *ast.StringLiteral  { return &ast.StringLiteral{Value: s} }

func newModule(body *ast.Block) *scope.Module {
	prog := &ast.Program{Body: body}
	return scope.NewModule("test", "test.luau", prog)
}

func hasKind(m *scope.Module, k diagnostics.Kind) bool {
	for _, e := range m.Errors.Errors() {
		if e.Data.Kind == k {
			return true
		}
	}
	return false
}

// TestReturnTypeMismatch covers spec.md §8's "subtype mismatch on
// return": a function declared to return string but whose body returns
// a number should report TypeMismatch.
func TestReturnTypeMismatch(t *testing.T) {
	fn := &ast.FunctionExpr{
		ReturnAnnot: &ast.ListTypePackAnnot{Head: []ast.TypeAnnotation{&ast.NamedTypeAnnot{Name: "string"}}},
		Body: &ast.Block{Stats: []ast.Stat{
			&ast.ReturnStat{Values: []ast.Expr{numLit(1)}},
		}},
	}
	body := &ast.Block{Stats: []ast.Stat{
		&ast.FunctionStat{Name: name("f"), IsLocal: true, Fn: fn},
	}}
	m := newModule(body)
	New(m, config.FeatureFlags{}, config.DefaultLimits()).Check()

	if !hasKind(m, diagnostics.KindTypeMismatch) {
		t.Fatalf("expected a TypeMismatch diagnostic, got %+v", m.Errors.Errors())
	}
}

// TestCallArityMismatch covers spec.md §8's "arity failure": calling a
// one-argument function with two arguments reports CountMismatch.
func TestCallArityMismatch(t *testing.T) {
	fn := &ast.FunctionExpr{
		Params: []ast.FunctionParam{{Name: name("x"), Annotation: &ast.NamedTypeAnnot{Name: "number"}}},
		Body:   &ast.Block{},
	}
	body := &ast.Block{Stats: []ast.Stat{
		&ast.FunctionStat{Name: name("f"), IsLocal: true, Fn: fn},
		&ast.ExprStat{Call: &ast.CallExpr{Fn: name("f"), Args: []ast.Expr{numLit(1), numLit(2)}}},
	}}
	m := newModule(body)
	New(m, config.FeatureFlags{}, config.DefaultLimits()).Check()

	if !hasKind(m, diagnostics.KindCountMismatch) {
		t.Fatalf("expected a CountMismatch diagnostic, got %+v", m.Errors.Errors())
	}
}

// TestOptionalIndexAccessFlagged covers spec.md §8's "optional index
// access": indexing a `T?` property should flag OptionalValueAccess
// even though the access itself still produces a result type.
func TestOptionalIndexAccessFlagged(t *testing.T) {
	tableAnnot := &ast.OptionalTypeAnnot{Inner: &ast.TableTypeAnnot{
		Props: []ast.TablePropAnnot{{Name: "x", Value: &ast.NamedTypeAnnot{Name: "number"}}},
	}}
	idx := &ast.IndexName{Object: name("t"), Name: "x"}
	body := &ast.Block{Stats: []ast.Stat{
		&ast.LocalStat{
			Names:       []*ast.Name{name("t")},
			Annotations: []ast.TypeAnnotation{tableAnnot},
			Values:      []ast.Expr{&ast.NilLiteral{}},
		},
		&ast.LocalStat{Names: []*ast.Name{name("y")}, Values: []ast.Expr{idx}},
	}}

	m := newModule(body)
	New(m, config.FeatureFlags{}, config.DefaultLimits()).Check()

	if !hasKind(m, diagnostics.KindOptionalValueAccess) {
		t.Fatalf("expected an OptionalValueAccess diagnostic, got %+v", m.Errors.Errors())
	}
}

// TestGenericForIteratesFunctionReturns covers spec.md §8's "iterator
// protocol": `for k in f do ... end` where f is itself a function binds
// the loop variable from f's declared return types.
func TestGenericForIteratesFunctionReturns(t *testing.T) {
	iterFn := &ast.FunctionExpr{
		ReturnAnnot: &ast.ListTypePackAnnot{Head: []ast.TypeAnnotation{&ast.NamedTypeAnnot{Name: "string"}}},
		Body:        &ast.Block{},
	}
	loopBody := &ast.Block{Stats: []ast.Stat{}}
	body := &ast.Block{Stats: []ast.Stat{
		&ast.FunctionStat{Name: name("iter"), IsLocal: true, Fn: iterFn},
		&ast.GenericForStat{
			Names:  []*ast.Name{name("k")},
			Values: []ast.Expr{name("iter")},
			Body:   loopBody,
		},
	}}
	m := newModule(body)
	New(m, config.FeatureFlags{}, config.DefaultLimits()).Check()

	if hasKind(m, diagnostics.KindGenericError) {
		t.Fatalf("did not expect an iteration error, got %+v", m.Errors.Errors())
	}
}

func TestRequireUnresolvedYieldsErrorTypeNotCrash(t *testing.T) {
	req := &ast.RequireStat{Local: name("mod"), PathExpr: strLit("./missing"), Tag: "require"}
	body := &ast.Block{Stats: []ast.Stat{req}}
	m := newModule(body)
	New(m, config.FeatureFlags{}, config.DefaultLimits()).Check()
	// No RequireResolver wired and no traced entry in m.Requires: this
	// must not panic, and should leave no diagnostic of its own (silent
	// per spec.md §4.G).
	if m.Errors.Len() != 0 {
		t.Fatalf("expected no diagnostics for an untraced require, got %+v", m.Errors.Errors())
	}
}
