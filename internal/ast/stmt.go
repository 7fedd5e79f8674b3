package ast

// Stat is any statement node.
type Stat interface {
	Node
	statNode()
}

type statBase struct{ base }

func (statBase) statNode() {}

// Block is an ordered list of statements sharing one lexical scope; the
// validator pushes a scope on entry and pops it on exit (spec.md §4.F).
type Block struct {
	base
	Stats []Stat
}

// LocalStat is `local a, b: T = expr1, expr2, ...` (spec.md §4.F "Local
// assignment"). Names and Annotations run in lockstep; Annotations[i] is
// nil when the i'th local has no declared type.
type LocalStat struct {
	statBase
	Names       []*Name
	Annotations []TypeAnnotation
	Values      []Expr
}

// AssignStat is `lhs1, lhs2 = rhs1, rhs2` (spec.md §4.F "Assignment").
type AssignStat struct {
	statBase
	Targets []Expr // each is a Name, IndexName, or IndexExpr
	Values  []Expr
}

// CompoundAssignStat is `a op= b` (spec.md §4.F "Compound assignment").
type CompoundAssignStat struct {
	statBase
	Target Expr
	Op     BinaryOp
	Value  Expr
}

type ReturnStat struct {
	statBase
	Values []Expr
}

type BreakStat struct{ statBase }
type ContinueStat struct{ statBase }

type ExprStat struct {
	statBase
	Call Expr // always a CallExpr in practice; typed as Expr to keep one field
}

type DoStat struct {
	statBase
	Body *Block
}

type WhileStat struct {
	statBase
	Cond Expr
	Body *Block
}

type RepeatStat struct {
	statBase
	Body *Block
	Cond Expr
}

// IfStat models `if/elseif*/else`; ElseIfs run in source order and Else is
// nil when absent.
type ElseIfClause struct {
	Cond Expr
	Body *Block
}

type IfStat struct {
	statBase
	Cond     Expr
	Then     *Block
	ElseIfs  []ElseIfClause
	Else     *Block
}

// NumericForStat is `for i = from, to, step do ... end` (spec.md §4.F
// "Numeric for"). Step is nil when omitted (defaults to 1).
type NumericForStat struct {
	statBase
	Var        *Name
	Annotation TypeAnnotation
	From, To   Expr
	Step       Expr
	Body       *Block
}

// GenericForStat is `for a, b in values do ... end` (spec.md §4.F
// "Generic for (for...in)").
type GenericForStat struct {
	statBase
	Names       []*Name
	Annotations []TypeAnnotation
	Values      []Expr
	Body        *Block
}

// FunctionStat declares a named function, either a plain global/local
// function or, when Receiver is non-nil, a method/extension declaration
// (`function t:m(...)` or `function t.m(...)`).
type FunctionStat struct {
	statBase
	Name     *Name
	Receiver TypeAnnotation // non-nil for `function Recv:Name(...)` forms
	IsLocal  bool
	Fn       *FunctionExpr
}

// TypeAliasStat is `type Name<Generics> = Annotation` (possibly exported).
type TypeAliasStat struct {
	statBase
	Name     string
	Generics []GenericParam
	Exported bool
	Value    TypeAnnotation
}

// RequireStat is `local name = require(pathExpr)` or the `include`
// analogue (spec.md §4.G). The parser recognizes the call-form shape and
// emits this node directly so the Require Tracer (internal/require) never
// has to pattern-match a generic CallExpr; Tag distinguishes `require`
// from `include`-like variants.
type RequireStat struct {
	statBase
	Local   *Name
	PathExpr Expr
	Tag     string // "require", "include", ...
}

// Program is a whole parsed file: its top-level block plus the hot-comment
// header the parser lifted off the front of the file (spec.md §6
// "Hot-comment mode selection").
type Program struct {
	base
	File        string
	Body        *Block
	HotComments []HotComment
}

// HotComment is one `--!strict` / `--!nonstrict` / `--!nocheck` style
// comment found in the file's leading comment block.
type HotComment struct {
	Text string
	Pos  Position
}
