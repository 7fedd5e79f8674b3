package ast

// TypeAnnotation is the source-level syntax for a type, as written by the
// programmer (`number`, `string?`, `{x: number}`, `(number) -> string`,
// ...). The external inference engine resolves each TypeAnnotation node to
// a types.Type and records the mapping by node identity (spec.md §3
// Module record: "a mapping from annotation node to resolved type"); this
// package only fixes the syntactic shape.
type TypeAnnotation interface {
	Node
	typeAnnotNode()
}

type typeAnnotBase struct{ base }

func (typeAnnotBase) typeAnnotNode() {}

// NamedTypeAnnot is a reference to a named type: a primitive (`number`),
// a type alias, a class name, or a generic parameter, optionally
// instantiated with type arguments (`Array<T>`) and optionally qualified
// by an imported module prefix (`Roact.Element`).
type NamedTypeAnnot struct {
	typeAnnotBase
	Prefix   string // "" when unqualified
	Name     string
	TypeArgs []TypeAnnotation
	PackArgs []TypePackAnnotation
}

// OptionalTypeAnnot is `T?`, sugar for `T | nil`.
type OptionalTypeAnnot struct {
	typeAnnotBase
	Inner TypeAnnotation
}

// UnionTypeAnnot is `A | B | C`.
type UnionTypeAnnot struct {
	typeAnnotBase
	Options []TypeAnnotation
}

// IntersectionTypeAnnot is `A & B & C`.
type IntersectionTypeAnnot struct {
	typeAnnotBase
	Parts []TypeAnnotation
}

// TableTypeAnnot is `{ name: T, [string]: U }`: named properties plus an
// optional indexer.
type TablePropAnnot struct {
	Name     string
	Value    TypeAnnotation
	ReadOnly bool
}

type TableIndexerAnnot struct {
	Key   TypeAnnotation
	Value TypeAnnotation
}

type TableTypeAnnot struct {
	typeAnnotBase
	Props   []TablePropAnnot
	Indexer *TableIndexerAnnot
}

// FunctionTypeAnnot is `<Generics>(Params) -> Rets`.
type FunctionTypeAnnot struct {
	typeAnnotBase
	Generics   []GenericParam
	ParamNames []string // parallel to Params; "" when unnamed
	Params     []TypeAnnotation
	Variadic   TypeAnnotation // non-nil when the last param is `...T`
	Rets       TypePackAnnotation
}

// SingletonTypeAnnot is a literal-type annotation: `"ok"` or `true`.
type SingletonTypeAnnot struct {
	typeAnnotBase
	IsString bool
	String   string
	Bool     bool
}

// TypeofAnnot is `typeof(expr)`, resolved against the expression's
// inferred type rather than parsed as a name.
type TypeofAnnot struct {
	typeAnnotBase
	Expr Expr
}

// TypePackAnnotation is the source syntax for a return/argument type pack:
// `(number, string)`, `...number`, or a single bare type standing for a
// one-element pack.
type TypePackAnnotation interface {
	Node
	typePackAnnotNode()
}

type typePackAnnotBase struct{ base }

func (typePackAnnotBase) typePackAnnotNode() {}

type ListTypePackAnnot struct {
	typePackAnnotBase
	Head []TypeAnnotation
	Tail TypePackAnnotation // non-nil for an explicit variadic tail
}

type VariadicTypePackAnnot struct {
	typePackAnnotBase
	Element TypeAnnotation
}

type GenericTypePackAnnot struct {
	typePackAnnotBase
	Name string
}
