package unify

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/types"
)

func newTestUnifier() (*types.Arena, *types.Builtins, *Unifier) {
	a := types.NewArena()
	b := types.NewBuiltins(a)
	return a, b, New(a, config.DefaultLimits())
}

func TestUnifyBindsFreeVariable(t *testing.T) {
	a, b, u := newTestUnifier()
	free := a.AddType(types.FreeKind{})
	if err := u.Unify(free, b.Number); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Follow(free) != b.Number {
		t.Fatalf("expected free variable bound to number")
	}
}

func TestUnifyPrimitiveMismatch(t *testing.T) {
	_, b, u := newTestUnifier()
	if err := u.Unify(b.Number, b.String); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestUnifyRollsBackOnFailure(t *testing.T) {
	a, _, u := newTestUnifier()
	free := a.AddType(types.FreeKind{})
	fn := a.AddType(types.FunctionKind{
		Args: a.AddTypePack(types.ListPackKind{Head: []*types.Type{free}}),
		Rets: a.AddTypePack(types.ListPackKind{}),
	})
	other := a.AddType(types.PrimitiveKind{Name: "thread"})

	if err := u.Unify(fn, other); err == nil {
		t.Fatalf("expected mismatch error")
	}
	if _, isFree := free.Kind.(types.FreeKind); !isFree {
		t.Fatalf("expected free variable to remain unbound after rollback, got %T", free.Kind)
	}
}

func TestIsSubtypeUnionMembership(t *testing.T) {
	a, b, u := newTestUnifier()
	union := a.AddType(types.UnionKind{Options: []*types.Type{b.Number, b.String}})
	if !u.IsSubtype(b.Number, union) {
		t.Fatalf("expected number <: number | string")
	}
	if u.IsSubtype(b.Boolean, union) {
		t.Fatalf("expected boolean not<: number | string")
	}
}

func TestIsSubtypeAnyIsUniversal(t *testing.T) {
	_, b, u := newTestUnifier()
	if !u.IsSubtype(b.Number, b.Any) {
		t.Fatalf("expected number <: any")
	}
	if !u.IsSubtype(b.Any, b.Number) {
		t.Fatalf("expected any <: number (any is bidirectionally compatible)")
	}
}

func TestOccursCheckRejectsInfiniteType(t *testing.T) {
	a, _, u := newTestUnifier()
	free := a.AddType(types.FreeKind{})
	table := a.AddType(types.TableKind{
		Props: map[string]*types.Property{
			"next": {ReadType: free, WriteType: free},
		},
		State: types.TableUnsealed,
	})
	if err := u.Unify(free, table); err == nil {
		t.Fatalf("expected infinite type error")
	}
}

func TestSealedTableRejectsExtraProperty(t *testing.T) {
	a, b, u := newTestUnifier()
	sealed := a.AddType(types.TableKind{
		Props: map[string]*types.Property{
			"x": {ReadType: b.Number, WriteType: b.Number},
		},
		State: types.TableSealed,
	})
	extra := a.AddType(types.TableKind{
		Props: map[string]*types.Property{
			"x": {ReadType: b.Number, WriteType: b.Number},
			"y": {ReadType: b.String, WriteType: b.String},
		},
		State: types.TableUnsealed,
	})
	if err := u.Unify(extra, sealed); err == nil {
		t.Fatalf("expected error: sealed target rejects extra property")
	}
}

func TestFunctionContravariantParams(t *testing.T) {
	a, b, u := newTestUnifier()
	// (number) -> string
	narrow := a.AddType(types.FunctionKind{
		Args: a.AddTypePack(types.ListPackKind{Head: []*types.Type{b.Number}}),
		Rets: a.AddTypePack(types.ListPackKind{Head: []*types.Type{b.String}}),
	})
	// (any) -> string is a subtype (wider parameter accepted) of narrow
	wideParam := a.AddType(types.FunctionKind{
		Args: a.AddTypePack(types.ListPackKind{Head: []*types.Type{b.Any}}),
		Rets: a.AddTypePack(types.ListPackKind{Head: []*types.Type{b.String}}),
	})
	if !u.IsSubtype(wideParam, narrow) {
		t.Fatalf("expected (any)->string <: (number)->string by contravariance")
	}
}
