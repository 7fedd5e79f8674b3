package ast

// Expr is any expression node. Validator and inference engine key their
// per-node type maps on the Expr's identity (the pointer itself), never on
// structural equality — two syntactically identical calls at different
// locations are different keys.
type Expr interface {
	Node
	exprNode()
}

type exprBase struct{ base }

func (exprBase) exprNode() {}

// NilLiteral, BooleanLiteral, NumberLiteral and StringLiteral are the
// constant expression forms checked by "Constants" in spec.md §4.F.
type NilLiteral struct{ exprBase }

type BooleanLiteral struct {
	exprBase
	Value bool
}

type NumberLiteral struct {
	exprBase
	Value  float64
	Source string // original lexeme, preserved for diagnostics
}

type StringLiteral struct {
	exprBase
	Value string
}

// Vararg is `...`.
type Vararg struct{ exprBase }

// Name is an identifier reference. Resolution (local, global, or upvalue)
// is recorded by the inference engine, not here — the validator reads it
// back out of the scope tree (internal/scope) by identity.
type Name struct {
	exprBase
	Value string
}

// ParenExpr wraps a parenthesized expression. Luau semantics: parens
// truncate a multi-value expression to its first result; kept as a
// distinct node so the validator can special-case call-in-parens.
type ParenExpr struct {
	exprBase
	Inner Expr
}

// TableField is one entry of a TableConstructor: either positional
// ([i] = value, implicit), named (name = value), or computed ([k] = value).
type TableField struct {
	Key   Expr // nil for positional fields
	Value Expr
}

type TableConstructor struct {
	exprBase
	Fields []TableField
}

// FunctionParam is one formal parameter, with an optional type annotation.
type FunctionParam struct {
	Name       *Name
	Annotation TypeAnnotation // nil if unannotated
}

// FunctionExpr is an anonymous (or named-local) function literal.
type FunctionExpr struct {
	exprBase
	Generics     []GenericParam
	Params       []FunctionParam
	Vararg       bool
	VarargAnnot  TypeAnnotation
	ReturnAnnot  TypePackAnnotation
	Body         *Block
	HasSelf      bool // true for `function t:m(...)` method declarations
	DebugName    string
}

// GenericParam names a generic type or type-pack parameter introduced at a
// function or type-alias boundary (spec.md Generic(name, scope)).
type GenericParam struct {
	Name   string
	IsPack bool
}

// CallExpr is `f(args...)`. MethodName is non-empty for `obj:method(args)`
// calls, in which case Fn is the receiver expression and `self` is
// implicitly prepended to the actual argument pack (spec.md §4.F Call,
// step 7).
type CallExpr struct {
	exprBase
	Fn         Expr
	MethodName string // "" for a plain call
	Args       []Expr
}

// IndexName is `expr.name`; a method call `expr:name(...)` is a CallExpr
// with MethodName set instead.
type IndexName struct {
	exprBase
	Object Expr
	Name   string
}

// IndexExpr is `expr[key]`.
type IndexExpr struct {
	exprBase
	Object Expr
	Key    Expr
}

type UnaryOp int

const (
	UnaryMinus UnaryOp = iota
	UnaryNot
	UnaryLen
)

type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinConcat
	BinEq
	BinNeq
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
)

type BinaryExpr struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

// TypeAssertion is `expr :: T` (spec.md §4.F Type assertion).
type TypeAssertion struct {
	exprBase
	Operand    Expr
	Annotation TypeAnnotation
}

// IfExpr is the expression-form conditional (`if c then a else b`), used
// wherever the language allows a conditional in expression position.
type IfExpr struct {
	exprBase
	Cond, Then, Else Expr
}
