// Package unify implements Component B (spec.md §4.B): the subtyper and
// unifier that drive every type-relatedness check the validator performs.
//
// Grounded on the teacher's internal/typesystem/unify.go (co-inductive
// visited-pair cycle handling, a Bind step with an occurs check, and
// union-member subtyping: "T <: T | U") but reworked from a
// substitution-returning `Unify(t1, t2) (Subst, error)` into an
// in-place, transaction-logged mutator over internal/types.Arena: the
// teacher's Subst map composes immutable replacements for later
// application via Type.Apply, whereas this package rebinds Free nodes
// directly (internal/types.Arena.Rebind) so every other holder of the
// pointer observes the binding without a second Apply pass.
package unify

import (
	"fmt"

	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/types"
)

// Variance controls whether Unify checks equality, or one-directional
// subtyping (spec.md §4.B "variance: covariant argument/return
// positions, contravariant function parameters, invariant table
// properties").
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) flip() Variance {
	switch v {
	case Covariant:
		return Contravariant
	case Contravariant:
		return Covariant
	default:
		return Invariant
	}
}

// Error is returned by a failed Unify/IsSubtype call. It never itself
// becomes a diagnostics.TypeError directly — the validator decides how
// to report it — but it carries enough structure (Expected/Actual) for
// the validator to build a TypeMismatch without re-deriving it.
type Error struct {
	Expected, Actual *types.Type
	Reason           string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Expected, e.Actual, e.Reason)
}

// tooComplex is returned once the iteration budget is exhausted
// (spec.md §5 "UnificationTooComplex"); the validator maps it straight
// to diagnostics.KindUnificationTooComplex.
type tooComplex struct{}

func (tooComplex) Error() string { return "unification too complex" }

// ErrTooComplex is the sentinel a caller can errors.Is against.
var ErrTooComplex error = tooComplex{}

// pair is a co-induction key: two nodes already being compared higher up
// the call stack are assumed equal rather than re-descended into,
// exactly like the teacher's visited []typePair (but keyed by pointer
// identity rather than reflect.DeepEqual, since nodes here have stable
// arena identity).
type pair struct{ a, b *types.Type }

// Unifier drives tryUnify/isSubtype calls against one arena, bounded by
// a configured iteration budget (spec.md §5 "Cancellation & timeouts").
type Unifier struct {
	arena     *types.Arena
	limits    config.Limits
	iterations int
}

func New(arena *types.Arena, limits config.Limits) *Unifier {
	return &Unifier{arena: arena, limits: limits}
}

// Unify attempts to make a and b equal (invariant), staging every
// rebind against a fresh transaction log and committing only on
// success (spec.md §4.B "tryUnify stages writes; caller commits or
// rolls back" — here the commit/rollback decision is made for the
// caller: a single top-level Unify call is one all-or-nothing unit).
func (u *Unifier) Unify(a, b *types.Type) error {
	log := u.arena.Begin()
	if err := u.unify(a, b, Invariant, nil); err != nil {
		u.arena.Rollback(log)
		return err
	}
	u.arena.Commit(log)
	return nil
}

// IsSubtype reports whether sub is a subtype of super (spec.md §4.B
// "isSubtype(sub, super) → bool", used for assignment/argument/return
// compatibility without committing any binding: the walk binds every
// Free node it meets, exactly as Unify does, and the whole log is then
// rolled back whatever the answer).
func (u *Unifier) IsSubtype(sub, super *types.Type) bool {
	log := u.arena.Begin()
	err := u.unify(sub, super, Covariant, nil)
	u.arena.Rollback(log) // a subtype query never commits a binding
	return err == nil
}

func (u *Unifier) tick() error {
	u.iterations++
	if u.iterations > u.limits.UnifierIterationLimit {
		return ErrTooComplex
	}
	return nil
}

func (u *Unifier) unify(a, b *types.Type, variance Variance, visited []pair) error {
	if err := u.tick(); err != nil {
		return err
	}

	a, b = types.Follow(a), types.Follow(b)

	if a == b {
		return nil
	}

	for _, p := range visited {
		if p.a == a && p.b == b {
			return nil // co-inductive assumption: already being compared
		}
	}
	visited = append(visited, pair{a, b})

	// Any/Unknown/Error suppress: they're compatible with everything in
	// either direction (spec.md §7 "Error as a suppressor"; §3 "any is
	// bidirectionally compatible with everything").
	if isAny(a) || isAny(b) {
		return nil
	}
	if isError(a) || isError(b) {
		return nil
	}
	if _, ok := b.Kind.(types.UnknownKind); ok && variance != Contravariant {
		return nil // everything is a subtype of unknown
	}
	if _, ok := a.Kind.(types.NeverKind); ok {
		return nil // never is a subtype of everything
	}

	if fa, ok := a.Kind.(types.FreeKind); ok {
		return u.bind(a, fa, b, variance)
	}
	if fb, ok := b.Kind.(types.FreeKind); ok {
		return u.bind(b, fb, a, variance.flip())
	}

	// Union subtyping: T <: (A | B) if T <: A or T <: B (teacher's
	// "t1 is a member of union t2" rule, generalized to each option).
	if ub, ok := b.Kind.(types.UnionKind); ok && variance != Contravariant {
		if _, aIsUnion := a.Kind.(types.UnionKind); !aIsUnion {
			for _, opt := range ub.Options {
				if u.unify(a, opt, variance, visited) == nil {
					return nil
				}
			}
			return &Error{Expected: b, Actual: a, Reason: "type is not a member of the union"}
		}
	}
	if ua, ok := a.Kind.(types.UnionKind); ok {
		// (A | B) <: T if every option is <: T.
		for _, opt := range ua.Options {
			if err := u.unify(opt, b, variance, visited); err != nil {
				return err
			}
		}
		return nil
	}

	// Intersection subtyping: T <: (A & B) if T <: A and T <: B.
	if ib, ok := b.Kind.(types.IntersectionKind); ok && variance != Contravariant {
		for _, part := range ib.Parts {
			if err := u.unify(a, part, variance, visited); err != nil {
				return err
			}
		}
		return nil
	}
	if ia, ok := a.Kind.(types.IntersectionKind); ok {
		for _, part := range ia.Parts {
			if u.unify(part, b, variance, visited) == nil {
				return nil
			}
		}
		return &Error{Expected: b, Actual: a, Reason: "no intersection part satisfies the target"}
	}

	switch ka := a.Kind.(type) {
	case types.PrimitiveKind:
		kb, ok := b.Kind.(types.PrimitiveKind)
		if !ok || kb.Name != ka.Name {
			return &Error{Expected: b, Actual: a, Reason: "primitive mismatch"}
		}
		return nil
	case types.SingletonKind:
		switch kb := b.Kind.(type) {
		case types.SingletonKind:
			if ka.IsString == kb.IsString && ka.Str == kb.Str && ka.Bool == kb.Bool {
				return nil
			}
		case types.PrimitiveKind:
			if variance != Invariant {
				if (ka.IsString && kb.Name == "string") || (!ka.IsString && kb.Name == "boolean") {
					return nil
				}
			}
		}
		return &Error{Expected: b, Actual: a, Reason: "singleton mismatch"}
	case types.FunctionKind:
		kb, ok := b.Kind.(types.FunctionKind)
		if !ok {
			return &Error{Expected: b, Actual: a, Reason: "not a function"}
		}
		// Parameters are contravariant, returns covariant (spec.md §4.B).
		if err := u.unifyPack(ka.Args, kb.Args, variance.flip(), visited); err != nil {
			return err
		}
		return u.unifyPack(ka.Rets, kb.Rets, variance, visited)
	case types.TableKind:
		return u.unifyTable(a, ka, b, variance, visited)
	case types.MetatableKind:
		kb, ok := b.Kind.(types.MetatableKind)
		if !ok {
			return u.unify(ka.Table, b, variance, visited)
		}
		return u.unify(ka.Table, kb.Table, variance, visited)
	case types.ClassKind:
		kb, ok := b.Kind.(types.ClassKind)
		if !ok {
			return &Error{Expected: b, Actual: a, Reason: "not a class"}
		}
		if variance == Invariant {
			if ka.Name != kb.Name {
				return &Error{Expected: b, Actual: a, Reason: "unrelated classes"}
			}
			return nil
		}
		for c := a; c != nil; {
			ck, ok := c.Kind.(types.ClassKind)
			if !ok {
				break
			}
			if ck.Name == kb.Name {
				return nil
			}
			c = ck.Parent
		}
		return &Error{Expected: b, Actual: a, Reason: "class is not a descendant of the target class"}
	case types.GenericKind:
		kb, ok := b.Kind.(types.GenericKind)
		if ok && kb.Name == ka.Name {
			return nil
		}
		return &Error{Expected: b, Actual: a, Reason: "unrelated generic parameters"}
	default:
		return &Error{Expected: b, Actual: a, Reason: "unrelated type kinds"}
	}
}

// bind narrows a Free type node to target, honoring variance: a
// covariant/contravariant position may only narrow the Free node to a
// bound that's consistent with the direction being checked, but since a
// Free node has no prior constraint here, binding is always legal
// except for the occurs check (spec.md Invariant 1, and the teacher's
// Bind "infinite type" guard).
func (u *Unifier) bind(free *types.Type, _ types.FreeKind, target *types.Type, _ Variance) error {
	if free == target {
		return nil
	}
	if occurs(free, target) {
		return &Error{Expected: target, Actual: free, Reason: "infinite type"}
	}
	u.arena.Rebind(free, types.BoundKind{Target: target})
	return nil
}

func occurs(free, t *types.Type) bool {
	return occursVisit(free, t, map[*types.Type]bool{})
}

func occursVisit(free, t *types.Type, seen map[*types.Type]bool) bool {
	t = types.Follow(t)
	if t == free {
		return true
	}
	if seen[t] {
		return false
	}
	seen[t] = true
	switch k := t.Kind.(type) {
	case types.FunctionKind:
		return occursPack(free, k.Args, seen) || occursPack(free, k.Rets, seen)
	case types.TableKind:
		for _, p := range k.Props {
			if p.ReadType != nil && occursVisit(free, p.ReadType, seen) {
				return true
			}
			if p.WriteType != nil && occursVisit(free, p.WriteType, seen) {
				return true
			}
		}
		if k.Indexer != nil {
			return occursVisit(free, k.Indexer.Key, seen) || occursVisit(free, k.Indexer.Value, seen)
		}
		return false
	case types.UnionKind:
		for _, o := range k.Options {
			if occursVisit(free, o, seen) {
				return true
			}
		}
		return false
	case types.IntersectionKind:
		for _, p := range k.Parts {
			if occursVisit(free, p, seen) {
				return true
			}
		}
		return false
	case types.MetatableKind:
		return occursVisit(free, k.Table, seen) || occursVisit(free, k.Metatable, seen)
	case types.NegationKind:
		return occursVisit(free, k.Inner, seen)
	default:
		return false
	}
}

func occursPack(free *types.Type, p *types.Pack, seen map[*types.Type]bool) bool {
	if p == nil {
		return false
	}
	p = types.FollowPack(p)
	switch k := p.Kind.(type) {
	case types.ListPackKind:
		for _, h := range k.Head {
			if occursVisit(free, h, seen) {
				return true
			}
		}
		if k.Tail != nil {
			return occursPack(free, k.Tail, seen)
		}
		return false
	case types.VariadicPackKind:
		return occursVisit(free, k.Element, seen)
	default:
		return false
	}
}

func isAny(t *types.Type) bool {
	_, ok := t.Kind.(types.AnyKind)
	return ok
}

func isError(t *types.Type) bool {
	_, ok := t.Kind.(types.ErrorKind)
	return ok
}
