package types

import "github.com/reflectrpteam/luau/internal/ast"

// The Kind variants below are this module's version of the teacher's
// TVar/TCon/TApp/TTuple/TRecord/TUnion/TFunc/TForall/TType sum type
// (internal/typesystem/types.go), expanded to spec.md §3's full kind
// list and stripped of the teacher's Hindley-Milner "generalize /
// instantiate via Subst" machinery, which Component D (internal/clone)
// replaces with arena-to-arena cloning.

func (FreeKind) kindTag() string             { return "Free" }
func (GenericKind) kindTag() string          { return "Generic" }
func (BoundKind) kindTag() string            { return "Bound" }
func (BlockedKind) kindTag() string          { return "Blocked" }
func (PendingExpansionKind) kindTag() string { return "PendingExpansion" }
func (PrimitiveKind) kindTag() string        { return "Primitive" }
func (SingletonKind) kindTag() string        { return "Singleton" }
func (FunctionKind) kindTag() string         { return "Function" }
func (TableKind) kindTag() string            { return "Table" }
func (MetatableKind) kindTag() string        { return "Metatable" }
func (ClassKind) kindTag() string            { return "Class" }
func (UnionKind) kindTag() string            { return "Union" }
func (IntersectionKind) kindTag() string     { return "Intersection" }
func (AnyKind) kindTag() string              { return "Any" }
func (UnknownKind) kindTag() string          { return "Unknown" }
func (NeverKind) kindTag() string            { return "Never" }
func (ErrorKind) kindTag() string            { return "Error" }
func (NegationKind) kindTag() string         { return "Negation" }
func (LazyKind) kindTag() string             { return "Lazy" }
func (TypeFamilyInstanceKind) kindTag() string { return "TypeFamilyInstance" }

// FreeKind is an unbound type variable, eligible for unification
// (spec.md "Free"). Scope bounds generalization the way the teacher's
// TVar carries a binder depth.
type FreeKind struct {
	Scope *Scope
}

// GenericKind is a skolemized (rigid, not unifiable) type parameter
// bound by an enclosing TForall-equivalent function signature.
type GenericKind struct {
	Name  string
	Scope *Scope
}

// BoundKind is the indirection left behind after unification binds a
// Free or Blocked node to a concrete type (spec.md Invariant 1: "Bound
// chains are acyclic and finite"). Follow walks these away.
type BoundKind struct {
	Target *Type
}

// BlockedKind marks a node whose resolution depends on a type family
// instance (or other external constraint) that hasn't resolved yet.
type BlockedKind struct {
	// Owner identifies the TypeFamilyInstance (or other constraint)
	// this node is blocked on, for diagnostics only.
	Owner *Type
}

// PendingExpansionKind marks a type-function application awaiting
// expansion by the (external) constraint solver.
type PendingExpansionKind struct {
	Family string
	Args   []*Type
	Packs  []*Pack
}

// Primitive names a built-in ground type: nil, boolean, number, string,
// thread, buffer.
type PrimitiveKind struct {
	Name string
}

// SingletonKind is a literal type: a specific string or boolean value.
type SingletonKind struct {
	IsString bool
	Str      string
	Bool     bool
}

// FunctionKind is a (possibly generic) function signature.
type FunctionKind struct {
	Generics     []*Type
	GenericPacks []*Pack
	Args         *Pack
	Rets         *Pack

	// ArgNames parallels the Args list's head elements, for diagnostics
	// ("argument 'self'" instead of "argument #1"); "" when unnamed.
	ArgNames []string

	CheckedFunction bool // a --!strict "checked" function boundary
}

// Property is a single table/class member (spec.md §3 "Property"):
// either one read-write type, or a distinct read-only/write-only pair.
type Property struct {
	ReadType  *Type // nil if write-only
	WriteType *Type // nil if read-only, or equal to ReadType if read-write

	Deprecated           bool
	DeprecatedSuggestion string
	Location             ast.Position
	Tags                 []string
	DocumentationSymbol   string
}

// ReadWrite reports whether this property has independent read and
// write types (spec.md's "separately-typed read/write property").
func (p Property) ReadWrite() bool {
	return p.ReadType != nil && p.WriteType != nil && p.ReadType != p.WriteType
}

// TableState is a table type's mutability regime (spec.md §3 "Table
// states").
type TableState int

const (
	TableFree TableState = iota
	TableSealed
	TableGeneric
	TableUnsealed
)

func (s TableState) String() string {
	switch s {
	case TableSealed:
		return "sealed"
	case TableGeneric:
		return "generic"
	case TableUnsealed:
		return "unsealed"
	default:
		return "free"
	}
}

// TableKind is a table type: named properties, an optional indexer, and
// a mutability state.
type TableKind struct {
	Props   map[string]*Property
	Indexer *TableIndexer

	State TableState

	// Name is non-empty for a named table type (a type alias's RHS),
	// used for cycle-safe, readable diagnostics instead of printing the
	// full structural expansion.
	Name string
}

// TableIndexer is a table's `[K]: V` entry.
type TableIndexer struct {
	Key   *Type
	Value *Type
}

// MetatableKind pairs a table with its metatable, as produced by
// `setmetatable` typing rules.
type MetatableKind struct {
	Table    *Type
	Metatable *Type
}

// ClassKind is an opaque, nominal host type (spec.md §10.7 virtual
// packages: DbHandle, GrpcChannel, HttpClient, ...). Unlike TableKind,
// two ClassKinds are related only through explicit Parent links, never
// structurally.
type ClassKind struct {
	Name   string
	Props  map[string]*Property
	Parent *Type // nil for a root class
	Indexer *TableIndexer
}

// UnionKind is `A | B | C`. Options is always non-nil and has at least
// two entries after normalization; the normalizer (internal/normalize)
// flattens nested unions.
type UnionKind struct {
	Options []*Type
}

// IntersectionKind is `A & B & C`.
type IntersectionKind struct {
	Parts []*Type
}

type AnyKind struct{}
type UnknownKind struct{}
type NeverKind struct{}

// ErrorKind is a suppressing placeholder substituted for a type that
// could not be resolved, so that one unresolved reference doesn't
// cascade into unrelated diagnostics elsewhere in the same module
// (spec.md §7 "Error as a suppressor").
type ErrorKind struct {
	// Message records why, for an ExtraInformation attachment; never
	// itself surfaced as the primary diagnostic.
	Message string
}

// NegationKind is `~T` as used internally by the normalizer's
// disjoint-component representation; not directly writable in source.
type NegationKind struct {
	Inner *Type
}

// LazyKind defers resolving a recursive type alias's body until first
// use, breaking the chicken-and-egg problem of `type T = {next: T}`.
type LazyKind struct {
	Resolve func() *Type
	cached  *Type
}

// TypeFamilyInstanceKind is an as-yet-unreduced application of a type
// family (e.g. `rawget<T, "x">`), tracked so the normalizer and unifier
// can both see it's pending rather than treating it as opaque.
type TypeFamilyInstanceKind struct {
	Family string
	Args   []*Type
	Packs  []*Pack
}

// Scope is an opaque binder-depth/identity marker used by FreeKind and
// GenericKind to scope generalization; internal/scope owns its real
// definition and construction, this package only needs the pointer
// identity.
type Scope struct {
	Name string
}
