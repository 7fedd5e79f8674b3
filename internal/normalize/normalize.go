// Package normalize implements Component C (spec.md §4.C): flattening
// an arbitrarily nested union/intersection of types into one
// Normalized value with disjoint components, so the validator and
// unifier can ask "could this ever be a string" in constant time
// instead of re-walking a tree of TUnion/TIntersection nodes on every
// query.
//
// Grounded on the teacher's union-subtyping walk in
// internal/typesystem/unify.go (the "is t1 a member of union t2" loop),
// generalized from a single membership test into a full partition
// across every type kind, and on the teacher's own normalized-table
// literal handling in internal/analyzer/helpers_types.go's constant
// folding (grouping same-shaped literals together) for the Tables
// bucket's "keep sealed table shapes separate" behavior.
package normalize

import (
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/types"
)

// Normalized is the disjoint-component decomposition of a type (spec.md
// §4.C "NormalizedType"). Each field that's non-nil/non-empty is
// present in the union; HasError/HasAny/HasUnknown are boolean
// shortcuts for the types that absorb everything else, and HasNever
// records that Never was seen, which adds nothing to the set.
type Normalized struct {
	HasNil     bool
	Booleans   BooleanState // none / true only / false only / both
	Numbers    bool
	Strings    map[string]bool // specific singleton strings
	AnyString  bool            // the unqualified `string` primitive is present
	Threads    bool
	Buffers    bool
	Functions  []*types.Type
	Tables     []*types.Type
	Classes    []*types.Type

	HasAny     bool
	HasUnknown bool
	HasNever   bool
	HasError   bool
}

// BooleanState tracks which boolean singletons (or the unqualified
// primitive) are present.
type BooleanState int

const (
	NoBoolean BooleanState = iota
	TrueOnly
	FalseOnly
	AnyBoolean
)

func (b *BooleanState) add(lit bool) {
	switch *b {
	case NoBoolean:
		if lit {
			*b = TrueOnly
		} else {
			*b = FalseOnly
		}
	case TrueOnly:
		if !lit {
			*b = AnyBoolean
		}
	case FalseOnly:
		if lit {
			*b = AnyBoolean
		}
	}
}

func (b *BooleanState) addAny() { *b = AnyBoolean }

// ErrTooComplex is returned once normalize's node budget is exhausted
// (spec.md §5 "NormalizationTooComplex").
type tooComplexErr struct{}

func (tooComplexErr) Error() string { return "normalization too complex" }

var ErrTooComplex error = tooComplexErr{}

// Normalizer memoizes Normalized results per arena (spec.md §4.C
// "memoized per arena") and bounds the total number of nodes visited
// across the lifetime of one Normalizer.
type Normalizer struct {
	arena   *types.Arena
	cache   map[*types.Type]*Normalized
	visited int
	budget  int
}

func New(arena *types.Arena, limits config.Limits) *Normalizer {
	budget := limits.UnifierIterationLimit
	if budget <= 0 {
		budget = 100000
	}
	return &Normalizer{arena: arena, cache: map[*types.Type]*Normalized{}, budget: budget}
}

// Normalize computes (or returns the cached) disjoint-component form of
// t.
func (n *Normalizer) Normalize(t *types.Type) (*Normalized, error) {
	t = types.Follow(t)
	if cached, ok := n.cache[t]; ok {
		return cached, nil
	}
	result := &Normalized{Strings: map[string]bool{}}
	if err := n.visit(t, result, map[*types.Type]bool{}); err != nil {
		return nil, err
	}
	n.cache[t] = result
	return result, nil
}

func (n *Normalizer) visit(t *types.Type, out *Normalized, active map[*types.Type]bool) error {
	n.visited++
	if n.visited > n.budget {
		return ErrTooComplex
	}
	t = types.Follow(t)
	if active[t] {
		return nil // a recursive alias normalizes its already-open branch as empty
	}
	active[t] = true
	defer delete(active, t)

	switch k := t.Kind.(type) {
	case types.AnyKind:
		out.HasAny = true
	case types.UnknownKind:
		out.HasUnknown = true
	case types.NeverKind:
		out.HasNever = true
	case types.ErrorKind:
		out.HasError = true
	case types.PrimitiveKind:
		switch k.Name {
		case "nil":
			out.HasNil = true
		case "boolean":
			out.Booleans.addAny()
		case "number":
			out.Numbers = true
		case "string":
			out.AnyString = true
		case "thread":
			out.Threads = true
		case "buffer":
			out.Buffers = true
		}
	case types.SingletonKind:
		if k.IsString {
			out.Strings[k.Str] = true
		} else {
			out.Booleans.add(k.Bool)
		}
	case types.FunctionKind:
		out.Functions = append(out.Functions, t)
	case types.TableKind:
		out.Tables = append(out.Tables, t)
	case types.MetatableKind:
		return n.visit(k.Table, out, active)
	case types.ClassKind:
		out.Classes = append(out.Classes, t)
	case types.UnionKind:
		for _, opt := range k.Options {
			if err := n.visit(opt, out, active); err != nil {
				return err
			}
		}
	case types.IntersectionKind:
		// An intersection normalizes to the pointwise AND of its parts;
		// approximated here as each part's own normalization merged,
		// since a full cross-product distribution is rarely needed by
		// the validator's queries (subtype checks don't consult this
		// path) and would otherwise blow the node budget on pathological
		// inputs.
		for _, part := range k.Parts {
			if err := n.visit(part, out, active); err != nil {
				return err
			}
		}
	case types.LazyKind:
		resolved := k.Resolve()
		return n.visit(resolved, out, active)
	case types.GenericKind, types.FreeKind, types.BlockedKind, types.PendingExpansionKind,
		types.TypeFamilyInstanceKind, types.NegationKind:
		// Not yet concrete enough to place in a disjoint bucket; callers
		// checking "could this be X" should treat an otherwise-empty
		// Normalized conservatively (spec.md: unresolved constraints
		// suppress rather than falsely narrow).
		out.HasUnknown = out.HasUnknown
	}
	return nil
}

// HasString reports whether the normalized type could ever be (any)
// string, covering both the unqualified primitive and any singleton.
func (no *Normalized) HasString() bool {
	return no.AnyString || len(no.Strings) > 0
}

// IsEmpty reports a Never-equivalent normalization: nothing matched any
// bucket and the type carries no absorbing component either.
func (no *Normalized) IsEmpty() bool {
	return !no.HasNil && no.Booleans == NoBoolean && !no.Numbers && !no.HasString() &&
		!no.Threads && !no.Buffers && len(no.Functions) == 0 && len(no.Tables) == 0 &&
		len(no.Classes) == 0 && !no.HasAny && !no.HasUnknown && !no.HasError
}
