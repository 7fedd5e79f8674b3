// Package types implements the type arena and graph (spec.md §4.A): the
// sole owner of every type and type-pack node, the identity/sharing rules
// that make unification's in-place rebinding safe, and the transaction log
// that makes speculative unification reversible.
//
// This is grounded on the teacher's internal/typesystem package (its Type
// interface plus TVar/TCon/TApp/TFunc/TTuple/TRecord/TUnion/TForall/TType
// variant structs, pattern-matched with a type switch in
// ApplyWithCycleCheck) but reworked from a Hindley-Milner value-type
// algebra into an arena-owned, mutate-in-place graph: the teacher's types
// are immutable values copied around Subst maps, whereas spec.md's model
// requires a node whose identity survives unification (Bound rebinds the
// node itself, it does not return a new one) so that every other node
// still holding that pointer observes the binding.
package types

// Kind is the tagged-variant payload of a Type node (spec.md "Type
// kinds"). Each concrete kind type below implements Kind; a type switch
// over Kind is this module's substitute for the "visitor-style double
// dispatch" the redesign notes call out (spec.md §11 / §9 design notes).
type Kind interface {
	kindTag() string
}

// PackKind is the tagged-variant payload of a Pack node (spec.md
// "Type-pack kinds").
type PackKind interface {
	packKindTag() string
}

// Type is a single immutable-identity node in an Arena. Its Kind field is
// the only mutable part of the node, and is only ever mutated through
// Arena.Rebind so that every mutation is logged (spec.md §4.A
// "Transaction log").
type Type struct {
	id         uint64
	arena      *Arena
	Kind       Kind
	Persistent bool // spec.md Invariant 2: never mutated, never cloned
}

// ID returns a stable, arena-scoped identity useful for memoization keys
// (e.g. the normalizer's per-arena cache) without exposing the pointer
// itself as a map key (which would work too, but an explicit ID reads
// better in diagnostics and tests).
func (t *Type) ID() uint64 { return t.id }

// Pack is the type-pack analogue of Type.
type Pack struct {
	id         uint64
	arena      *Arena
	Kind       PackKind
	Persistent bool
}

func (p *Pack) ID() uint64 { return p.id }

// Arena owns a set of Type and Pack nodes sharing one lifetime (spec.md
// "Arena" in GLOSSARY). Arenas are never shared across goroutines
// concurrently (spec.md §5: "Arenas are NOT shared"); each module owns
// exactly one arena for its body and one smaller "interface arena" for
// its re-exported surface (spec.md §3 "Modules and scopes").
type Arena struct {
	nextID uint64
	types  []*Type
	packs  []*Pack
	frozen bool
	log    *TxLog // active transaction log, if any (see txlog.go)
}

// NewArena creates an empty, mutable arena.
func NewArena() *Arena {
	return &Arena{}
}

// AddType allocates a new Type node with the given Kind (spec.md §4.A
// "addType(kind) → T"). Panics if the arena is frozen, mirroring the
// spec's "prevent further allocation/mutation" contract for Freeze.
func (a *Arena) AddType(kind Kind) *Type {
	if a.frozen {
		panic("types: AddType on a frozen arena")
	}
	a.nextID++
	t := &Type{id: a.nextID, arena: a, Kind: kind}
	a.types = append(a.types, t)
	return t
}

// AddTypePack allocates a new Pack node (spec.md §4.A "addTypePack(kind)
// → P").
func (a *Arena) AddTypePack(kind PackKind) *Pack {
	if a.frozen {
		panic("types: AddTypePack on a frozen arena")
	}
	a.nextID++
	p := &Pack{id: a.nextID, arena: a, Kind: kind}
	a.packs = append(a.packs, p)
	return p
}

// Freeze prevents further allocation through this arena (spec.md
// §4.A); AddType and AddTypePack panic on a frozen arena. Nothing
// outside this package's tests calls it, so module interface arenas
// stay unfrozen.
func (a *Arena) Freeze() { a.frozen = true }

// Unfreeze permits mutation again, "during error attachment" per
// spec.md §4.A — the one documented exception where a frozen interface
// arena still needs a write (e.g. stamping a deprecation tag discovered
// after the fact).
func (a *Arena) Unfreeze() { a.frozen = false }

// Frozen reports the arena's current freeze state.
func (a *Arena) Frozen() bool { return a.frozen }

// Types returns every Type node the arena owns, in allocation order. Used
// by the cloner's cycle-preserving walk and by tests asserting identity
// invariants; not used on any hot path.
func (a *Arena) Types() []*Type { return a.types }

// Packs returns every Pack node the arena owns, in allocation order.
func (a *Arena) Packs() []*Pack { return a.packs }

// Owns reports whether t was allocated by this arena. Cross-arena edges
// are a programmer error everywhere except through the cloner (§4.D),
// which is exactly why the cloner exists.
func (a *Arena) Owns(t *Type) bool { return t != nil && t.arena == a }

// OwnsPack reports whether p was allocated by this arena.
func (a *Arena) OwnsPack(p *Pack) bool { return p != nil && p.arena == a }
