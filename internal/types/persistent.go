package types

// Builtins holds the small set of persistent nodes: any, unknown,
// never, the primitives, and a generic error node for suppression
// (spec.md Invariant 2). They are not process-wide: each NewBuiltins
// call allocates a fresh set on the arena it is given, so two arenas'
// sets are distinct nodes. Cloning (internal/clone) checks Persistent
// and passes these through by reference instead of copying, so a clone
// can still point at the source arena's set.
type Builtins struct {
	Any     *Type
	Unknown *Type
	Never   *Type
	Err     *Type

	Nil     *Type
	Boolean *Type
	Number  *Type
	String  *Type
	Thread  *Type
	Buffer  *Type
}

// NewBuiltins allocates the persistent singleton set on arena, marking
// each node Persistent so Arena.Rebind refuses to ever mutate it.
func NewBuiltins(arena *Arena) *Builtins {
	mk := func(kind Kind) *Type {
		t := arena.AddType(kind)
		t.Persistent = true
		return t
	}
	return &Builtins{
		Any:     mk(AnyKind{}),
		Unknown: mk(UnknownKind{}),
		Never:   mk(NeverKind{}),
		Err:     mk(ErrorKind{Message: "unresolved"}),
		Nil:     mk(PrimitiveKind{Name: "nil"}),
		Boolean: mk(PrimitiveKind{Name: "boolean"}),
		Number:  mk(PrimitiveKind{Name: "number"}),
		String:  mk(PrimitiveKind{Name: "string"}),
		Thread:  mk(PrimitiveKind{Name: "thread"}),
		Buffer:  mk(PrimitiveKind{Name: "buffer"}),
	}
}
