package types

// TxLog records every node rebind performed while it is active, so a
// speculative unification attempt (spec.md §4.B "tryUnify stages its
// writes against a transaction log; the caller commits or rolls back")
// can be undone without the unifier itself needing to know how a Type or
// Pack was mutated.
type TxLog struct {
	typeEntries []typeEntry
	packEntries []packEntry
}

type typeEntry struct {
	node *Type
	prev Kind
}

type packEntry struct {
	node *Pack
	prev PackKind
}

// Begin starts logging rebinds on this arena.
// Nested Begin/Commit pairs are not supported — spec.md models staged
// unification as a single flat log per top-level tryUnify call — so
// Begin panics if a log is already active, to catch a caller bug rather
// than silently discard entries.
func (a *Arena) Begin() *TxLog {
	if a.log != nil {
		panic("types: nested transaction log")
	}
	log := &TxLog{}
	a.log = log
	return log
}

// Rebind mutates t's Kind in place, recording the previous Kind in the
// arena's active log (if any) so Rollback can restore it. This is the
// only sanctioned way to change a node's Kind after allocation — it is
// what makes Bound-by-mutation observable to every other holder of the
// pointer, and what makes that mutation reversible.
func (a *Arena) Rebind(t *Type, newKind Kind) {
	if t.Persistent {
		panic("types: Rebind on a persistent node")
	}
	if a.log != nil {
		a.log.typeEntries = append(a.log.typeEntries, typeEntry{node: t, prev: t.Kind})
	}
	t.Kind = newKind
}

// RebindPack is Rebind's type-pack counterpart.
func (a *Arena) RebindPack(p *Pack, newKind PackKind) {
	if p.Persistent {
		panic("types: RebindPack on a persistent node")
	}
	if a.log != nil {
		a.log.packEntries = append(a.log.packEntries, packEntry{node: p, prev: p.Kind})
	}
	p.Kind = newKind
}

// Commit discards the log without undoing anything: the staged
// rebinds stand.
func (a *Arena) Commit(log *TxLog) {
	if a.log != log {
		panic("types: Commit of a log that isn't active")
	}
	a.log = nil
}

// Rollback undoes every rebind recorded in log, in reverse order, and
// deactivates it. Used when tryUnify fails partway through and the
// caller wants the arena exactly as it was (spec.md §4.B
// "Rollback restores every touched node to its prior Kind").
func (a *Arena) Rollback(log *TxLog) {
	if a.log != log {
		panic("types: Rollback of a log that isn't active")
	}
	for i := len(log.typeEntries) - 1; i >= 0; i-- {
		e := log.typeEntries[i]
		e.node.Kind = e.prev
	}
	for i := len(log.packEntries) - 1; i >= 0; i-- {
		e := log.packEntries[i]
		e.node.Kind = e.prev
	}
	a.log = nil
}

// Len reports how many rebinds are currently staged, useful for tests
// asserting that a failed unification attempt left no net mutation.
func (l *TxLog) Len() int { return len(l.typeEntries) + len(l.packEntries) }
