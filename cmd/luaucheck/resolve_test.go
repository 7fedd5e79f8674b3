package main

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/frontend"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/types"
)

func TestModuleExportResolverReturnsNilForUncheckedModule(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	resolve := moduleExportResolver(fe)
	if _, ok := resolve(scope.ModuleInfo{Name: "missing"}); ok {
		t.Fatalf("expected no resolution for a module that was never checked")
	}
}

func TestModuleExportResolverBuildsSealedTableFromExports(t *testing.T) {
	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())
	fe.AddSource("dep", &ast.Program{Body: &ast.Block{}})
	if _, err := fe.Check(frontend.NewRequest("dep", frontend.ViewNormal)); err != nil {
		t.Fatal(err)
	}

	dep, ok := fe.LookupChecked("dep", frontend.ViewNormal)
	if !ok {
		t.Fatalf("expected dep to be checked")
	}
	dep.Exports["value"] = dep.Builtins.Number

	resolve := moduleExportResolver(fe)
	typ, ok := resolve(scope.ModuleInfo{Name: "dep"})
	if !ok {
		t.Fatalf("expected a resolved type for a checked module")
	}
	table, ok := typ.Kind.(types.TableKind)
	if !ok {
		t.Fatalf("expected a TableKind, got %T", typ.Kind)
	}
	if table.State != types.TableSealed {
		t.Fatalf("expected a sealed table, got %v", table.State)
	}
	if _, ok := table.Props["value"]; !ok {
		t.Fatalf("expected an exported property %q to survive into the table", "value")
	}
}
