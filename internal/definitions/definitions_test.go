package definitions

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/types"
)

func TestRegistryRegistersBuiltinPackages(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"db", "grpc", "http"} {
		if _, ok := r.Get(name); !ok {
			t.Fatalf("expected package %q to be registered", name)
		}
	}
}

func TestDbOpenReturnsResultUnion(t *testing.T) {
	r := NewRegistry()
	db, ok := r.Get("db")
	if !ok {
		t.Fatal("expected db package")
	}
	open, ok := db.Symbols["dbOpen"]
	if !ok {
		t.Fatal("expected dbOpen symbol")
	}
	fnKind, ok := open.Kind.(types.FunctionKind)
	if !ok {
		t.Fatalf("expected dbOpen to be a function, got %T", open.Kind)
	}
	rets, ok := types.FollowPack(fnKind.Rets).Kind.(types.ListPackKind)
	if !ok || len(rets.Head) != 1 {
		t.Fatalf("expected a single return value, got %+v", fnKind.Rets)
	}
	if _, ok := rets.Head[0].Kind.(types.UnionKind); !ok {
		t.Fatalf("expected dbOpen to return a string|DbHandle union, got %s", rets.Head[0])
	}
}

func TestClassMethodPrependsSelf(t *testing.T) {
	r := NewRegistry()
	db, _ := r.Get("db")
	handle := db.Classes["DbHandle"]
	ck := handle.Kind.(types.ClassKind)
	queryProp, ok := ck.Props["query"]
	if !ok {
		t.Fatal("expected a query method on DbHandle")
	}
	fnKind := queryProp.ReadType.Kind.(types.FunctionKind)
	args := fnKind.Args.Kind.(types.ListPackKind)
	if len(args.Head) != 2 {
		t.Fatalf("expected (self, string) args, got %d", len(args.Head))
	}
	if args.Head[0] != handle {
		t.Fatalf("expected the first argument to be the DbHandle class itself (self)")
	}
}
