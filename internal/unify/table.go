package unify

import "github.com/reflectrpteam/luau/internal/types"

// unifyTable implements spec.md §4.B's table-subtyping rule: width
// subtyping (extra properties on the actual side are fine, grounded on
// the teacher's UnifyAllowExtra "t2 may have extra fields if t1 is a
// Record" width-subtyping mode) except in an invariant check against a
// sealed target, which rejects them. A property the target has and the
// actual side lacks is an error only when the actual side is sealed and
// has no string-keyed indexer — an unsealed/free table can still gain
// properties later, a sealed one cannot.
func (u *Unifier) unifyTable(a *types.Type, ka types.TableKind, b *types.Type, variance Variance, visited []pair) error {
	kb, ok := b.Kind.(types.TableKind)
	if !ok {
		return &Error{Expected: b, Actual: a, Reason: "not a table"}
	}

	for name, bp := range kb.Props {
		ap, ok := ka.Props[name]
		if !ok {
			if ka.Indexer != nil && indexerAcceptsStringKeys(ka.Indexer.Key) {
				continue
			}
			if ka.State == types.TableSealed {
				return &Error{Expected: b, Actual: a, Reason: "missing property '" + name + "'"}
			}
			continue
		}
		if ap.ReadType != nil && bp.ReadType != nil {
			if err := u.unify(ap.ReadType, bp.ReadType, variance, visited); err != nil {
				return err
			}
		}
		if ap.WriteType != nil && bp.WriteType != nil {
			if err := u.unify(ap.WriteType, bp.WriteType, variance.flip(), visited); err != nil {
				return err
			}
		}
	}

	// Width subtyping: a may carry extra properties kb doesn't require,
	// unless b is sealed (an exact record shape) and a is being checked
	// for strict equality (Invariant).
	if variance == Invariant && kb.State == types.TableSealed {
		for name := range ka.Props {
			if _, ok := kb.Props[name]; !ok {
				return &Error{Expected: b, Actual: a, Reason: "extra property '" + name + "' not allowed by sealed target"}
			}
		}
	}

	if ka.Indexer != nil && kb.Indexer != nil {
		if err := u.unify(ka.Indexer.Key, kb.Indexer.Key, Invariant, visited); err != nil {
			return err
		}
		if err := u.unify(ka.Indexer.Value, kb.Indexer.Value, variance, visited); err != nil {
			return err
		}
	}

	return nil
}

// indexerAcceptsStringKeys reports whether a `[K]: V` indexer can stand
// in for a missing named property lookup — true when K is `string` or
// `any` (property names are always strings at the syntax level).
func indexerAcceptsStringKeys(key *types.Type) bool {
	switch k := types.Follow(key).Kind.(type) {
	case types.PrimitiveKind:
		return k.Name == "string"
	case types.AnyKind:
		return true
	default:
		return false
	}
}

// unifyPack relates two type packs positionally, honoring a Variadic
// tail the way spec.md's pack-unification rule requires: once one side
// runs out of a fixed Head, any remaining elements on the other side
// must be compatible with its Variadic tail (or both tails must unify).
func (u *Unifier) unifyPack(a, b *types.Pack, variance Variance, visited []pair) error {
	a, b = types.FollowPack(a), types.FollowPack(b)
	if a == b {
		return nil
	}

	if fa, ok := a.Kind.(types.FreePackKind); ok {
		_ = fa
		u.arena.RebindPack(a, types.BoundPackKind{Target: b})
		return nil
	}
	if fb, ok := b.Kind.(types.FreePackKind); ok {
		_ = fb
		u.arena.RebindPack(b, types.BoundPackKind{Target: a})
		return nil
	}

	ka, aOK := a.Kind.(types.ListPackKind)
	kb, bOK := b.Kind.(types.ListPackKind)
	if aOK && bOK {
		n := len(ka.Head)
		if len(kb.Head) < n {
			n = len(kb.Head)
		}
		for i := 0; i < n; i++ {
			if err := u.unify(ka.Head[i], kb.Head[i], variance, visited); err != nil {
				return err
			}
		}
		if len(ka.Head) > len(kb.Head) {
			return u.matchTailAgainst(ka.Head[len(kb.Head):], kb.Tail, variance, visited)
		}
		if len(kb.Head) > len(ka.Head) {
			return u.matchTailAgainst(kb.Head[len(ka.Head):], ka.Tail, variance, visited)
		}
		if ka.Tail != nil && kb.Tail != nil {
			return u.unifyPack(ka.Tail, kb.Tail, variance, visited)
		}
		return nil
	}

	va, aIsVariadic := a.Kind.(types.VariadicPackKind)
	vb, bIsVariadic := b.Kind.(types.VariadicPackKind)
	if aIsVariadic && bIsVariadic {
		return u.unify(va.Element, vb.Element, variance, visited)
	}

	return nil
}

// matchTailAgainst checks each of extra against tail's variadic element
// (spec.md §4.B CountMismatch/variadic pack matching); a nil tail with
// leftover elements is a straight count mismatch the caller (validator)
// reports with more context than this package has, so it's returned as
// a generic Error here.
func (u *Unifier) matchTailAgainst(extra []*types.Type, tail *types.Pack, variance Variance, visited []pair) error {
	if tail == nil {
		return &Error{Reason: "pack length mismatch"}
	}
	tail = types.FollowPack(tail)
	v, ok := tail.Kind.(types.VariadicPackKind)
	if !ok {
		if _, isFree := tail.Kind.(types.FreePackKind); isFree {
			return nil
		}
		return &Error{Reason: "pack length mismatch"}
	}
	for _, e := range extra {
		if err := u.unify(e, v.Element, variance, visited); err != nil {
			return err
		}
	}
	return nil
}
