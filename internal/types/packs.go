package types

// Pack kinds mirror Type kinds one level up: a Pack is a (possibly
// open-ended) sequence of Types, used everywhere a Luau construct can
// yield or accept a variable-length list of values (call arguments,
// return values, `...`).

func (FreePackKind) packKindTag() string           { return "FreePack" }
func (GenericPackKind) packKindTag() string        { return "GenericPack" }
func (BoundPackKind) packKindTag() string          { return "BoundPack" }
func (ErrorPackKind) packKindTag() string          { return "ErrorPack" }
func (BlockedPackKind) packKindTag() string        { return "BlockedPack" }
func (VariadicPackKind) packKindTag() string       { return "VariadicPack" }
func (ListPackKind) packKindTag() string           { return "ListPack" }
func (FamilyInstancePackKind) packKindTag() string { return "FamilyInstancePack" }

// FreePackKind is an unbound type-pack variable.
type FreePackKind struct {
	Scope *Scope
}

// GenericPackKind is a skolemized type-pack parameter (`...T` generic
// pack parameter in a function signature).
type GenericPackKind struct {
	Name  string
	Scope *Scope
}

// BoundPackKind is the indirection left behind after a pack unifies.
type BoundPackKind struct {
	Target *Pack
}

// ErrorPackKind suppresses cascades the same way ErrorKind does for
// Type.
type ErrorPackKind struct {
	Message string
}

// BlockedPackKind mirrors BlockedKind for packs.
type BlockedPackKind struct {
	Owner *Type
}

// VariadicPackKind is `...T`: zero or more values all of type T.
type VariadicPackKind struct {
	Element *Type
}

// ListPackKind is a finite head of distinctly-typed elements, optionally
// followed by a Tail pack (itself Variadic, Generic, or another List) —
// the pack equivalent of TTuple, but open-ended rather than fixed-arity.
type ListPackKind struct {
	Head []*Type
	Tail *Pack // nil for a closed, fixed-length pack
}

// FamilyInstancePackKind is an unreduced type-family application that
// yields a pack rather than a single type.
type FamilyInstancePackKind struct {
	Family string
	Args   []*Type
	Packs  []*Pack
}
