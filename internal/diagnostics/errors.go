// Package diagnostics defines the TypeError value that every checking
// pass in this module reports through (spec.md §7). Diagnostics are data,
// never control flow: nothing in internal/check or internal/frontend
// panics or returns early because of a type error, it just appends one and
// keeps walking, matching the teacher's internal/analyzer "errors are
// accumulated, never abort the walk" discipline (internal/analyzer's
// walker.addError / errorSet deduplication-by-position pattern).
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/reflectrpteam/luau/internal/ast"
)

// Kind tags the variant carried by a TypeError's Data field (spec.md §7).
type Kind string

const (
	KindTypeMismatch              Kind = "TypeMismatch"
	KindCountMismatch             Kind = "CountMismatch"
	KindUnknownSymbol             Kind = "UnknownSymbol"
	KindUnknownProperty           Kind = "UnknownProperty"
	KindUnknownPropButFoundLike   Kind = "UnknownPropButFoundLikeProp"
	KindMissingUnionProperty      Kind = "MissingUnionProperty"
	KindCannotCallNonFunction     Kind = "CannotCallNonFunction"
	KindOptionalValueAccess       Kind = "OptionalValueAccess"
	KindCannotExtendTable         Kind = "CannotExtendTable"
	KindNotATable                 Kind = "NotATable"
	KindIncorrectGenericParamCount Kind = "IncorrectGenericParameterCount"
	KindSwappedGenericTypeParam   Kind = "SwappedGenericTypeParameter"
	KindDuplicateGenericParam     Kind = "DuplicateGenericParameter"
	KindGenericError              Kind = "GenericError"
	KindWhereClauseNeeded         Kind = "WhereClauseNeeded"
	KindPackWhereClauseNeeded     Kind = "PackWhereClauseNeeded"
	KindUnificationTooComplex     Kind = "UnificationTooComplex"
	KindNormalizationTooComplex   Kind = "NormalizationTooComplex"
	KindCodeTooComplex            Kind = "CodeTooComplex"
	KindModuleHasCyclicDependency Kind = "ModuleHasCyclicDependency"
	KindExtraInformation          Kind = "ExtraInformation"
	KindTypesAreUnrelated         Kind = "TypesAreUnrelated"
	KindCannotInferBinaryOp       Kind = "CannotInferBinaryOperation"
)

// CountMismatchContext distinguishes the call sites that can produce a
// CountMismatch (spec.md §7).
type CountMismatchContext string

const (
	ContextArg            CountMismatchContext = "Arg"
	ContextResult         CountMismatchContext = "Result"
	ContextReturn         CountMismatchContext = "Return"
	ContextFunctionResult CountMismatchContext = "FunctionResult"
	ContextExprListResult CountMismatchContext = "ExprListResult"
)

// ExtendKind distinguishes the two CannotExtendTable{...} sub-kinds.
type ExtendKind string

const (
	ExtendProperty ExtendKind = "Property"
	ExtendIndexer  ExtendKind = "Indexer"
)

// Data is the payload carried by a TypeError. Only the fields relevant to
// Kind are populated; this mirrors a tagged union without requiring a
// type switch over N distinct Go struct types threaded through every call
// site that wants to build one.
type Data struct {
	Kind Kind

	// TypeMismatch / TypesAreUnrelated
	Expected, Actual string

	// CountMismatch
	ExpectedCount     int
	ExpectedVariadic  bool
	ActualCount       int
	MismatchContext   CountMismatchContext

	// UnknownProperty / MissingUnionProperty / UnknownPropButFoundLikeProp
	PropertyName string
	SuggestedName string

	// CannotExtendTable
	ExtendKind ExtendKind

	// GenericError / ExtraInformation / CannotInferBinaryOperation
	Message string

	// ModuleHasCyclicDependency
	CycleModules []string
}

// TypeError is the sole diagnostic value produced by this module
// (spec.md §7: "Errors are data, not control flow").
type TypeError struct {
	Location   ast.Position
	ModuleName string
	File       string
	Data       Data
}

func New(loc ast.Position, moduleName string, data Data) *TypeError {
	return &TypeError{Location: loc, ModuleName: moduleName, Data: data}
}

func (e *TypeError) Error() string {
	switch e.Data.Kind {
	case KindTypeMismatch:
		return fmt.Sprintf("%s: type '%s' could not be converted into '%s'", e.Location, e.Data.Actual, e.Data.Expected)
	case KindCountMismatch:
		return fmt.Sprintf("%s: expected %d values, got %d (%s)", e.Location, e.Data.ExpectedCount, e.Data.ActualCount, e.Data.MismatchContext)
	case KindUnknownSymbol:
		return fmt.Sprintf("%s: unknown symbol '%s'", e.Location, e.Data.PropertyName)
	case KindUnknownProperty:
		return fmt.Sprintf("%s: unknown property '%s'", e.Location, e.Data.PropertyName)
	case KindUnknownPropButFoundLike:
		return fmt.Sprintf("%s: unknown property '%s' (did you mean '%s'?)", e.Location, e.Data.PropertyName, e.Data.SuggestedName)
	case KindMissingUnionProperty:
		return fmt.Sprintf("%s: not all union options have property '%s'", e.Location, e.Data.PropertyName)
	case KindCannotCallNonFunction:
		return fmt.Sprintf("%s: cannot call a value of type '%s'", e.Location, e.Data.Actual)
	case KindOptionalValueAccess:
		return fmt.Sprintf("%s: value may be nil", e.Location)
	case KindCannotExtendTable:
		return fmt.Sprintf("%s: cannot add %s to a sealed table", e.Location, e.Data.ExtendKind)
	case KindNotATable:
		return fmt.Sprintf("%s: type '%s' is not a table", e.Location, e.Data.Actual)
	case KindIncorrectGenericParamCount:
		return fmt.Sprintf("%s: incorrect number of generic parameters", e.Location)
	case KindSwappedGenericTypeParam:
		return fmt.Sprintf("%s: generic type and generic type pack parameters are swapped", e.Location)
	case KindDuplicateGenericParam:
		return fmt.Sprintf("%s: duplicate generic parameter", e.Location)
	case KindGenericError:
		return fmt.Sprintf("%s: %s", e.Location, e.Data.Message)
	case KindWhereClauseNeeded:
		return fmt.Sprintf("%s: a 'where' clause is needed here", e.Location)
	case KindPackWhereClauseNeeded:
		return fmt.Sprintf("%s: a type pack 'where' clause is needed here", e.Location)
	case KindUnificationTooComplex:
		return fmt.Sprintf("%s: unification is too complex; stopping typechecking", e.Location)
	case KindNormalizationTooComplex:
		return fmt.Sprintf("%s: normalizing this type is too complex; stopping typechecking", e.Location)
	case KindCodeTooComplex:
		return fmt.Sprintf("%s: code is too complex to typecheck", e.Location)
	case KindModuleHasCyclicDependency:
		return fmt.Sprintf("%s: module has a cyclic dependency: %v", e.Location, e.Data.CycleModules)
	case KindExtraInformation:
		return fmt.Sprintf("%s: %s", e.Location, e.Data.Message)
	case KindTypesAreUnrelated:
		return fmt.Sprintf("%s: types '%s' and '%s' are unrelated", e.Location, e.Data.Actual, e.Data.Expected)
	case KindCannotInferBinaryOp:
		return fmt.Sprintf("%s: cannot infer the result type of this binary operation: %s", e.Location, e.Data.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Location, e.Data.Kind)
	}
}

// Bag accumulates TypeErrors for one module, deduplicating by
// (line, column, kind) the way internal/analyzer's walker.errorSet does,
// and returns them sorted by source position (spec.md §7: "errors are
// returned in source order per module").
type Bag struct {
	seen   map[string]*TypeError
	order  []string
}

func NewBag() *Bag {
	return &Bag{seen: make(map[string]*TypeError)}
}

func (b *Bag) Add(err *TypeError) {
	key := fmt.Sprintf("%d:%d:%s", err.Location.Line, err.Location.Column, err.Data.Kind)
	if _, exists := b.seen[key]; !exists {
		b.order = append(b.order, key)
	}
	b.seen[key] = err
}

func (b *Bag) Errors() []*TypeError {
	result := make([]*TypeError, 0, len(b.order))
	for _, key := range b.order {
		result = append(result, b.seen[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, c := result[i].Location, result[j].Location
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
	return result
}

func (b *Bag) Len() int { return len(b.seen) }
