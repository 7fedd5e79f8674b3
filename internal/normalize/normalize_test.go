package normalize

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/types"
)

func TestNormalizeFlattensNestedUnion(t *testing.T) {
	a := types.NewArena()
	b := types.NewBuiltins(a)
	inner := a.AddType(types.UnionKind{Options: []*types.Type{b.Number, b.String}})
	outer := a.AddType(types.UnionKind{Options: []*types.Type{inner, b.Boolean}})

	n := New(a, config.DefaultLimits())
	res, err := n.Normalize(outer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Numbers || !res.HasString() || res.Booleans != AnyBoolean {
		t.Fatalf("expected number|string|boolean all present, got %+v", res)
	}
}

func TestNormalizeMemoizes(t *testing.T) {
	a := types.NewArena()
	b := types.NewBuiltins(a)
	n := New(a, config.DefaultLimits())
	r1, _ := n.Normalize(b.Number)
	r2, _ := n.Normalize(b.Number)
	if r1 != r2 {
		t.Fatalf("expected cached Normalized to be returned on second call")
	}
}

func TestNormalizeSingletonBooleans(t *testing.T) {
	a := types.NewArena()
	u := a.AddType(types.UnionKind{Options: []*types.Type{
		a.AddType(types.SingletonKind{Bool: true}),
		a.AddType(types.SingletonKind{Bool: true}),
	}})
	n := New(a, config.DefaultLimits())
	res, _ := n.Normalize(u)
	if res.Booleans != TrueOnly {
		t.Fatalf("expected TrueOnly, got %v", res.Booleans)
	}
}

func TestNormalizeEmptyIsNever(t *testing.T) {
	a := types.NewArena()
	b := types.NewBuiltins(a)
	n := New(a, config.DefaultLimits())
	res, _ := n.Normalize(b.Never)
	if !res.IsEmpty() {
		t.Fatalf("expected never to normalize to an empty component set")
	}
}
