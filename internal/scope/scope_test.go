package scope

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/types"
)

func TestLookupWalksOuterScopes(t *testing.T) {
	root := NewModuleScope(ast.Span{End: ast.Position{Line: 100}})
	root.Define("x", &Binding{Type: nil})
	child := root.Push(KindBlock, ast.Span{End: ast.Position{Line: 100}})

	if _, ok := child.Lookup("x"); !ok {
		t.Fatalf("expected child scope to find outer binding 'x'")
	}
	if _, ok := child.Lookup("y"); ok {
		t.Fatalf("did not expect 'y' to resolve")
	}
}

func TestShadowingDoesNotMutateOuterScope(t *testing.T) {
	arena := types.NewArena()
	b := types.NewBuiltins(arena)
	root := NewModuleScope(ast.Span{})
	root.Define("x", &Binding{Type: b.Number})
	child := root.Push(KindBlock, ast.Span{})
	child.Define("x", &Binding{Type: b.String})

	got, _ := child.Lookup("x")
	if got.Type != b.String {
		t.Fatalf("expected shadowed binding in child scope")
	}
	outer, _ := root.Lookup("x")
	if outer.Type != b.Number {
		t.Fatalf("expected outer scope's binding to be unaffected by shadowing")
	}
}

func TestEnclosingFunctionFindsNearestFunctionScope(t *testing.T) {
	root := NewModuleScope(ast.Span{})
	fn := root.Push(KindFunction, ast.Span{})
	block := fn.Push(KindBlock, ast.Span{})

	if block.EnclosingFunction() != fn {
		t.Fatalf("expected nested block to resolve to its enclosing function scope")
	}
}

func TestModuleExportClonesIntoInterfaceArena(t *testing.T) {
	prog := &ast.Program{}
	m := NewModule("M", "m.luau", prog)
	local := m.Arena.AddType(types.PrimitiveKind{Name: "number"})
	m.Export("x", local)

	exported := m.Exports["x"]
	if exported == local {
		t.Fatalf("expected export to be a distinct, cloned node")
	}
	if !m.InterfaceArena.Owns(exported) {
		t.Fatalf("expected exported node to belong to the interface arena")
	}
}
