// Package clone implements Component D (spec.md §4.D): a deep copy of a
// type graph from a source Arena into a destination Arena, preserving
// both sharing (two references to the same source node become two
// references to the same destination node) and cycles.
//
// Grounded on the teacher's internal/typesystem/replace.go (ReplaceTCon:
// a recursive structural walk rebuilding each Type variant with its
// children replaced), generalized from a single-name substitution into
// a full arena-to-arena copy keyed by a seen-map rather than a name
// comparison, since this module's nodes carry no name to substitute by
// — only pointer identity.
package clone

import (
	"github.com/reflectrpteam/luau/internal/types"
)

// ErrTooComplex names the recursion-budget failure (spec.md §4.D
// "recursion limit, default 300, substituting an error node"). Clone
// and ClonePack do not return it: once the budget set by DefaultLimit
// or WithLimit is exhausted they substitute an error node instead.
type tooComplexErr struct{}

func (tooComplexErr) Error() string { return "clone too complex" }

var ErrTooComplex error = tooComplexErr{}

// DefaultLimit is the default recursion depth budget.
const DefaultLimit = 300

// Cloner copies nodes from src into dst, memoizing by source-node
// identity so shared structure and cycles both survive the copy
// (spec.md §4.D "two seen-maps", one per node kind here since Type and
// Pack are distinct node families).
type Cloner struct {
	dst      *types.Arena
	builtins *types.Builtins // persistent nodes pass through unchanged
	limit    int

	seenTypes map[*types.Type]*types.Type
	seenPacks map[*types.Pack]*types.Pack
}

// New creates a Cloner copying into dst. builtins identifies dst's
// persistent singleton pool, so that a persistent source node (itself
// always from some arena's own builtins set) maps onto dst's equivalent
// singleton rather than being duplicated (spec.md Invariant 2:
// "persistent nodes ... never cloned").
func New(dst *types.Arena, builtins *types.Builtins) *Cloner {
	return &Cloner{
		dst:       dst,
		builtins:  builtins,
		limit:     DefaultLimit,
		seenTypes: map[*types.Type]*types.Type{},
		seenPacks: map[*types.Pack]*types.Pack{},
	}
}

// WithLimit overrides the recursion depth budget.
func (c *Cloner) WithLimit(n int) *Cloner {
	c.limit = n
	return c
}

// Clone deep-copies t into the destination arena.
func (c *Cloner) Clone(t *types.Type) *types.Type {
	return c.cloneType(t, 0)
}

// ClonePack deep-copies a Pack into the destination arena.
func (c *Cloner) ClonePack(p *types.Pack) *types.Pack {
	return c.clonePack(p, 0)
}

func (c *Cloner) errorType(msg string) *types.Type {
	t := c.dst.AddType(types.ErrorKind{Message: msg})
	return t
}

func (c *Cloner) cloneType(t *types.Type, depth int) *types.Type {
	if t == nil {
		return nil
	}
	t = types.Follow(t)

	if t.Persistent {
		return persistentEquivalent(c.builtins, t)
	}
	if existing, ok := c.seenTypes[t]; ok {
		return existing
	}
	if depth > c.limit {
		return c.errorType("clone recursion limit exceeded")
	}

	// Allocate the destination node before recursing into children so a
	// cycle back to t resolves to this same placeholder (the cycle-
	// preservation half of spec.md §4.D): we build the Kind with a
	// mutable local copy of children, backfilling the node with
	// Arena.Rebind once children are cloned, rather than needing a
	// two-pass allocate/patch scheme.
	placeholder := c.dst.AddType(types.ErrorKind{Message: "clone placeholder"})
	c.seenTypes[t] = placeholder

	var newKind types.Kind
	switch k := t.Kind.(type) {
	case types.FreeKind:
		newKind = types.FreeKind{Scope: k.Scope}
	case types.GenericKind:
		newKind = types.GenericKind{Name: k.Name, Scope: k.Scope}
	case types.BlockedKind:
		newKind = types.BlockedKind{Owner: c.cloneType(k.Owner, depth+1)}
	case types.PendingExpansionKind:
		newKind = types.PendingExpansionKind{
			Family: k.Family,
			Args:   c.cloneTypeSlice(k.Args, depth),
			Packs:  c.clonePackSlice(k.Packs, depth),
		}
	case types.PrimitiveKind:
		newKind = k
	case types.SingletonKind:
		newKind = k
	case types.FunctionKind:
		newKind = types.FunctionKind{
			Generics:        c.cloneTypeSlice(k.Generics, depth),
			GenericPacks:    c.clonePackSlice(k.GenericPacks, depth),
			Args:            c.clonePack(k.Args, depth+1),
			Rets:            c.clonePack(k.Rets, depth+1),
			ArgNames:        append([]string(nil), k.ArgNames...),
			CheckedFunction: k.CheckedFunction,
		}
	case types.TableKind:
		newProps := make(map[string]*types.Property, len(k.Props))
		for name, p := range k.Props {
			newProps[name] = c.cloneProperty(p, depth)
		}
		var indexer *types.TableIndexer
		if k.Indexer != nil {
			indexer = &types.TableIndexer{
				Key:   c.cloneType(k.Indexer.Key, depth+1),
				Value: c.cloneType(k.Indexer.Value, depth+1),
			}
		}
		newKind = types.TableKind{Props: newProps, Indexer: indexer, State: k.State, Name: k.Name}
	case types.MetatableKind:
		newKind = types.MetatableKind{
			Table:     c.cloneType(k.Table, depth+1),
			Metatable: c.cloneType(k.Metatable, depth+1),
		}
	case types.ClassKind:
		newProps := make(map[string]*types.Property, len(k.Props))
		for name, p := range k.Props {
			newProps[name] = c.cloneProperty(p, depth)
		}
		var indexer *types.TableIndexer
		if k.Indexer != nil {
			indexer = &types.TableIndexer{
				Key:   c.cloneType(k.Indexer.Key, depth+1),
				Value: c.cloneType(k.Indexer.Value, depth+1),
			}
		}
		newKind = types.ClassKind{
			Name:    k.Name,
			Props:   newProps,
			Parent:  c.cloneType(k.Parent, depth+1),
			Indexer: indexer,
		}
	case types.UnionKind:
		newKind = types.UnionKind{Options: c.cloneTypeSlice(k.Options, depth)}
	case types.IntersectionKind:
		newKind = types.IntersectionKind{Parts: c.cloneTypeSlice(k.Parts, depth)}
	case types.AnyKind:
		newKind = k
	case types.UnknownKind:
		newKind = k
	case types.NeverKind:
		newKind = k
	case types.ErrorKind:
		newKind = k
	case types.NegationKind:
		newKind = types.NegationKind{Inner: c.cloneType(k.Inner, depth+1)}
	case types.LazyKind:
		// A Lazy node's resolver closure closes over the *source*
		// arena; force it once and clone the result rather than
		// carrying a closure across arenas.
		newKind = types.LazyKind{Resolve: func() *types.Type { return c.cloneType(k.Resolve(), depth+1) }}
	case types.TypeFamilyInstanceKind:
		newKind = types.TypeFamilyInstanceKind{
			Family: k.Family,
			Args:   c.cloneTypeSlice(k.Args, depth),
			Packs:  c.clonePackSlice(k.Packs, depth),
		}
	default:
		newKind = types.ErrorKind{Message: "clone: unrecognized kind"}
	}

	c.dst.Rebind(placeholder, newKind)
	return placeholder
}

func (c *Cloner) cloneProperty(p *types.Property, depth int) *types.Property {
	return &types.Property{
		ReadType:             c.cloneType(p.ReadType, depth+1),
		WriteType:            c.cloneType(p.WriteType, depth+1),
		Deprecated:           p.Deprecated,
		DeprecatedSuggestion: p.DeprecatedSuggestion,
		Location:             p.Location,
		Tags:                 append([]string(nil), p.Tags...),
		DocumentationSymbol:  p.DocumentationSymbol,
	}
}

func (c *Cloner) cloneTypeSlice(in []*types.Type, depth int) []*types.Type {
	if in == nil {
		return nil
	}
	out := make([]*types.Type, len(in))
	for i, t := range in {
		out[i] = c.cloneType(t, depth+1)
	}
	return out
}

func (c *Cloner) clonePackSlice(in []*types.Pack, depth int) []*types.Pack {
	if in == nil {
		return nil
	}
	out := make([]*types.Pack, len(in))
	for i, p := range in {
		out[i] = c.clonePack(p, depth+1)
	}
	return out
}

func (c *Cloner) clonePack(p *types.Pack, depth int) *types.Pack {
	if p == nil {
		return nil
	}
	p = types.FollowPack(p)
	if p.Persistent {
		return p
	}
	if existing, ok := c.seenPacks[p]; ok {
		return existing
	}
	if depth > c.limit {
		errPack := c.dst.AddTypePack(types.ErrorPackKind{Message: "clone recursion limit exceeded"})
		return errPack
	}

	placeholder := c.dst.AddTypePack(types.ErrorPackKind{Message: "clone placeholder"})
	c.seenPacks[p] = placeholder

	var newKind types.PackKind
	switch k := p.Kind.(type) {
	case types.FreePackKind:
		newKind = types.FreePackKind{Scope: k.Scope}
	case types.GenericPackKind:
		newKind = types.GenericPackKind{Name: k.Name, Scope: k.Scope}
	case types.ErrorPackKind:
		newKind = k
	case types.BlockedPackKind:
		newKind = types.BlockedPackKind{Owner: c.cloneType(k.Owner, depth+1)}
	case types.VariadicPackKind:
		newKind = types.VariadicPackKind{Element: c.cloneType(k.Element, depth+1)}
	case types.ListPackKind:
		newKind = types.ListPackKind{
			Head: c.cloneTypeSlice(k.Head, depth),
			Tail: c.clonePack(k.Tail, depth+1),
		}
	case types.FamilyInstancePackKind:
		newKind = types.FamilyInstancePackKind{
			Family: k.Family,
			Args:   c.cloneTypeSlice(k.Args, depth),
			Packs:  c.clonePackSlice(k.Packs, depth),
		}
	default:
		newKind = types.ErrorPackKind{Message: "clone: unrecognized pack kind"}
	}

	c.dst.RebindPack(placeholder, newKind)
	return placeholder
}

// persistentEquivalent maps a persistent source node onto dst's own
// persistent pool by structural identity (primitive name, or
// Any/Unknown/Never/Error), since persistent nodes are never copied —
// every arena's builtins are structurally identical, only their pointer
// identity differs per-arena.
func persistentEquivalent(b *types.Builtins, t *types.Type) *types.Type {
	switch k := t.Kind.(type) {
	case types.AnyKind:
		return b.Any
	case types.UnknownKind:
		return b.Unknown
	case types.NeverKind:
		return b.Never
	case types.ErrorKind:
		return b.Err
	case types.PrimitiveKind:
		switch k.Name {
		case "nil":
			return b.Nil
		case "boolean":
			return b.Boolean
		case "number":
			return b.Number
		case "string":
			return b.String
		case "thread":
			return b.Thread
		case "buffer":
			return b.Buffer
		}
	}
	return t
}
