package types

import (
	"sort"
	"strconv"
	"strings"
)

// String renders t for diagnostics, following Bound indirections first.
// Mirrors the teacher's TCon/TApp/TFunc String() methods used when
// building a TypeMismatch message, generalized to this package's larger
// kind set.
func (t *Type) String() string {
	return render(Follow(t), map[*Type]bool{})
}

func render(t *Type, active map[*Type]bool) string {
	if t == nil {
		return "<nil>"
	}
	if active[t] {
		return "<cycle>"
	}
	active[t] = true
	defer delete(active, t)

	switch k := t.Kind.(type) {
	case FreeKind:
		return "'" + strconv.FormatUint(t.ID(), 10)
	case GenericKind:
		return k.Name
	case BoundKind:
		return render(k.Target, active)
	case BlockedKind:
		return "blocked"
	case PendingExpansionKind:
		return k.Family + "<...>"
	case PrimitiveKind:
		return k.Name
	case SingletonKind:
		if k.IsString {
			return strconv.Quote(k.Str)
		}
		return strconv.FormatBool(k.Bool)
	case FunctionKind:
		var b strings.Builder
		b.WriteString("(")
		b.WriteString(renderPack(k.Args, active))
		b.WriteString(") -> ")
		b.WriteString(renderPack(k.Rets, active))
		return b.String()
	case TableKind:
		if k.Name != "" {
			return k.Name
		}
		var names []string
		for name := range k.Props {
			names = append(names, name)
		}
		sort.Strings(names)
		var b strings.Builder
		b.WriteString("{ ")
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			p := k.Props[name]
			if p.ReadType != nil {
				b.WriteString(render(p.ReadType, active))
			} else {
				b.WriteString(render(p.WriteType, active))
			}
		}
		if k.Indexer != nil {
			if len(names) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("[")
			b.WriteString(render(k.Indexer.Key, active))
			b.WriteString("]: ")
			b.WriteString(render(k.Indexer.Value, active))
		}
		b.WriteString(" }")
		return b.String()
	case MetatableKind:
		return render(k.Table, active)
	case ClassKind:
		return k.Name
	case UnionKind:
		parts := make([]string, len(k.Options))
		for i, o := range k.Options {
			parts[i] = render(o, active)
		}
		return strings.Join(parts, " | ")
	case IntersectionKind:
		parts := make([]string, len(k.Parts))
		for i, p := range k.Parts {
			parts[i] = render(p, active)
		}
		return strings.Join(parts, " & ")
	case AnyKind:
		return "any"
	case UnknownKind:
		return "unknown"
	case NeverKind:
		return "never"
	case ErrorKind:
		return "*error-type*"
	case NegationKind:
		return "~" + render(k.Inner, active)
	case LazyKind:
		if k.cached != nil {
			return render(k.cached, active)
		}
		return "<lazy>"
	case TypeFamilyInstanceKind:
		args := make([]string, len(k.Args))
		for i, a := range k.Args {
			args[i] = render(a, active)
		}
		return k.Family + "<" + strings.Join(args, ", ") + ">"
	default:
		return "<?>"
	}
}

func renderPack(p *Pack, active map[*Type]bool) string {
	if p == nil {
		return ""
	}
	p = FollowPack(p)
	switch k := p.Kind.(type) {
	case FreePackKind:
		return "'" + strconv.FormatUint(p.ID(), 10) + "..."
	case GenericPackKind:
		return k.Name + "..."
	case ErrorPackKind:
		return "*error-pack*"
	case BlockedPackKind:
		return "blocked..."
	case VariadicPackKind:
		return render(k.Element, active) + "..."
	case ListPackKind:
		parts := make([]string, len(k.Head))
		for i, h := range k.Head {
			parts[i] = render(h, active)
		}
		s := strings.Join(parts, ", ")
		if k.Tail != nil {
			if s != "" {
				s += ", "
			}
			s += renderPack(k.Tail, active)
		}
		return s
	case FamilyInstancePackKind:
		return k.Family + "<...>..."
	default:
		return "<?>"
	}
}
