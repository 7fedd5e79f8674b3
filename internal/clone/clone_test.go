package clone

import (
	"testing"

	"github.com/reflectrpteam/luau/internal/types"
)

func TestClonePreservesSharing(t *testing.T) {
	src := types.NewArena()
	shared := src.AddType(types.PrimitiveKind{Name: "number"})
	table := src.AddType(types.TableKind{
		Props: map[string]*types.Property{
			"a": {ReadType: shared, WriteType: shared},
			"b": {ReadType: shared, WriteType: shared},
		},
		State: types.TableSealed,
	})

	dst := types.NewArena()
	builtins := types.NewBuiltins(dst)
	c := New(dst, builtins)
	cloned := c.Clone(table)

	k := cloned.Kind.(types.TableKind)
	if k.Props["a"].ReadType != k.Props["b"].ReadType {
		t.Fatalf("expected cloned shared node to remain shared")
	}
	if !dst.Owns(k.Props["a"].ReadType) {
		t.Fatalf("expected cloned node to belong to destination arena")
	}
}

func TestClonePreservesCycle(t *testing.T) {
	src := types.NewArena()
	node := src.AddType(types.FreeKind{})
	table := src.AddType(types.TableKind{
		Props: map[string]*types.Property{
			"next": {ReadType: node, WriteType: node},
		},
		State: types.TableUnsealed,
	})
	src.Rebind(node, types.TableKind{
		Props: map[string]*types.Property{
			"next": {ReadType: table, WriteType: table},
		},
		State: types.TableUnsealed,
	})

	dst := types.NewArena()
	builtins := types.NewBuiltins(dst)
	c := New(dst, builtins)
	cloned := c.Clone(table)

	inner := cloned.Kind.(types.TableKind).Props["next"].ReadType
	innerInner := inner.Kind.(types.TableKind).Props["next"].ReadType
	if innerInner != cloned {
		t.Fatalf("expected clone to preserve the cycle back to the root node")
	}
}

func TestClonePassesThroughPersistentNodes(t *testing.T) {
	src := types.NewArena()
	srcBuiltins := types.NewBuiltins(src)

	dst := types.NewArena()
	dstBuiltins := types.NewBuiltins(dst)
	c := New(dst, dstBuiltins)

	cloned := c.Clone(srcBuiltins.Number)
	if cloned != dstBuiltins.Number {
		t.Fatalf("expected persistent node to map onto destination's own persistent pool")
	}
}
