package types

import "testing"

func TestRebindUpdatesAllHolders(t *testing.T) {
	a := NewArena()
	free := a.AddType(FreeKind{})
	num := a.AddType(PrimitiveKind{Name: "number"})

	holder := a.AddType(FunctionKind{
		Args: a.AddTypePack(ListPackKind{Head: []*Type{free}}),
		Rets: a.AddTypePack(ListPackKind{}),
	})

	a.Rebind(free, BoundKind{Target: num})

	fn := holder.Kind.(FunctionKind)
	arg := fn.Args.Kind.(ListPackKind).Head[0]
	if Follow(arg) != num {
		t.Fatalf("expected holder's argument to observe the rebind, got %v", Follow(arg))
	}
}

func TestCommitKeepsMutation(t *testing.T) {
	a := NewArena()
	free := a.AddType(FreeKind{})
	num := a.AddType(PrimitiveKind{Name: "number"})

	log := a.Begin()
	a.Rebind(free, BoundKind{Target: num})
	a.Commit(log)

	if Follow(free) != num {
		t.Fatalf("commit should keep the rebind")
	}
}

func TestRollbackUndoesMutation(t *testing.T) {
	a := NewArena()
	free := a.AddType(FreeKind{})
	num := a.AddType(PrimitiveKind{Name: "number"})

	log := a.Begin()
	a.Rebind(free, BoundKind{Target: num})
	if log.Len() != 1 {
		t.Fatalf("expected 1 staged entry, got %d", log.Len())
	}
	a.Rollback(log)

	if Follow(free) != free {
		t.Fatalf("rollback should restore the original Free kind")
	}
	if _, isFree := free.Kind.(FreeKind); !isFree {
		t.Fatalf("expected FreeKind after rollback, got %T", free.Kind)
	}
}

func TestFollowStopsOnBrokenCycle(t *testing.T) {
	a := NewArena()
	x := a.AddType(FreeKind{})
	y := a.AddType(FreeKind{})
	// Simulate a corrupted Bound chain (never produced by the real
	// unifier) to verify Follow terminates instead of hanging.
	x.Kind = BoundKind{Target: y}
	y.Kind = BoundKind{Target: x}

	got := Follow(x)
	if got != x && got != y {
		t.Fatalf("Follow should terminate on a broken cycle, got %v", got)
	}
}

func TestFreezePreventsAllocation(t *testing.T) {
	a := NewArena()
	a.Freeze()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected AddType on a frozen arena to panic")
		}
	}()
	a.AddType(AnyKind{})
}

func TestPersistentNodeRejectsRebind(t *testing.T) {
	a := NewArena()
	b := NewBuiltins(a)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected Rebind on a persistent node to panic")
		}
	}()
	a.Rebind(b.Any, AnyKind{})
}

func TestStringRendersUnionAndFunction(t *testing.T) {
	a := NewArena()
	b := NewBuiltins(a)
	union := a.AddType(UnionKind{Options: []*Type{b.Number, b.String}})
	if got, want := union.String(), "number | string"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	fn := a.AddType(FunctionKind{
		Args: a.AddTypePack(ListPackKind{Head: []*Type{b.Number}}),
		Rets: a.AddTypePack(ListPackKind{Head: []*Type{b.String}}),
	})
	if got, want := fn.String(), "(number) -> string"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
