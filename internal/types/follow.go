package types

// Follow walks t through any chain of BoundKind indirections and
// returns the terminal node (spec.md Invariant 1: "Bound chains are
// acyclic and finite"). The visited-set guard below is defensive only —
// Component B never constructs a cycle — but a wrong future change to
// Rebind should fail loud here rather than hang the checker.
func Follow(t *Type) *Type {
	if t == nil {
		return nil
	}
	seen := map[*Type]bool{}
	cur := t
	for {
		b, ok := cur.Kind.(BoundKind)
		if !ok {
			return cur
		}
		if seen[cur] {
			return cur // broken invariant; surface the loop node rather than hang
		}
		seen[cur] = true
		cur = b.Target
	}
}

// FollowPack is Follow's type-pack counterpart.
func FollowPack(p *Pack) *Pack {
	if p == nil {
		return nil
	}
	seen := map[*Pack]bool{}
	cur := p
	for {
		b, ok := cur.Kind.(BoundPackKind)
		if !ok {
			return cur
		}
		if seen[cur] {
			return cur
		}
		seen[cur] = true
		cur = b.Target
	}
}
