package check

import (
	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/types"
)

// resolveAnnotation turns the source-level TypeAnnotation syntax into a
// resolved types.Type, memoizing by node identity in
// Module.AnnotationTypes (spec.md §3 Module record).
func (v *Validator) resolveAnnotation(a ast.TypeAnnotation) *types.Type {
	if a == nil {
		return v.Module.Builtins.Any
	}
	if cached, ok := v.Module.AnnotationTypes[a]; ok {
		return cached
	}
	t := v.resolveAnnotationUncached(a)
	v.Module.AnnotationTypes[a] = t
	return t
}

func (v *Validator) resolveAnnotationUncached(a ast.TypeAnnotation) *types.Type {
	switch an := a.(type) {
	case *ast.NamedTypeAnnot:
		return v.resolveNamedAnnotation(an)
	case *ast.OptionalTypeAnnot:
		inner := v.resolveAnnotation(an.Inner)
		return v.Module.Arena.AddType(types.UnionKind{Options: []*types.Type{inner, v.Module.Builtins.Nil}})
	case *ast.UnionTypeAnnot:
		opts := make([]*types.Type, len(an.Options))
		for i, o := range an.Options {
			opts[i] = v.resolveAnnotation(o)
		}
		return v.Module.Arena.AddType(types.UnionKind{Options: opts})
	case *ast.IntersectionTypeAnnot:
		parts := make([]*types.Type, len(an.Parts))
		for i, p := range an.Parts {
			parts[i] = v.resolveAnnotation(p)
		}
		return v.Module.Arena.AddType(types.IntersectionKind{Parts: parts})
	case *ast.TableTypeAnnot:
		return v.resolveTableAnnotation(an)
	case *ast.FunctionTypeAnnot:
		return v.resolveFunctionAnnotation(an)
	case *ast.SingletonTypeAnnot:
		return v.Module.Arena.AddType(types.SingletonKind{IsString: an.IsString, Str: an.String, Bool: an.Bool})
	case *ast.TypeofAnnot:
		return v.inferExpr(an.Expr)
	default:
		return v.Module.Builtins.Any
	}
}

func (v *Validator) resolveNamedAnnotation(an *ast.NamedTypeAnnot) *types.Type {
	if an.Prefix == "" {
		switch an.Name {
		case "nil":
			return v.Module.Builtins.Nil
		case "boolean":
			return v.Module.Builtins.Boolean
		case "number":
			return v.Module.Builtins.Number
		case "string":
			return v.Module.Builtins.String
		case "thread":
			return v.Module.Builtins.Thread
		case "buffer":
			return v.Module.Builtins.Buffer
		case "any":
			return v.Module.Builtins.Any
		case "unknown":
			return v.Module.Builtins.Unknown
		case "never":
			return v.Module.Builtins.Never
		}
		if t, ok := v.currentScope.LookupType(an.Name); ok {
			return t
		}
	}
	v.addError(an.Pos(), diagnostics.Data{Kind: diagnostics.KindUnknownSymbol, PropertyName: an.Name})
	return v.errType()
}

func (v *Validator) resolveTableAnnotation(an *ast.TableTypeAnnot) *types.Type {
	props := make(map[string]*types.Property, len(an.Props))
	for _, p := range an.Props {
		t := v.resolveAnnotation(p.Value)
		prop := &types.Property{ReadType: t}
		if !p.ReadOnly {
			prop.WriteType = t
		}
		props[p.Name] = prop
	}
	var indexer *types.TableIndexer
	if an.Indexer != nil {
		indexer = &types.TableIndexer{
			Key:   v.resolveAnnotation(an.Indexer.Key),
			Value: v.resolveAnnotation(an.Indexer.Value),
		}
	}
	return v.Module.Arena.AddType(types.TableKind{Props: props, Indexer: indexer, State: types.TableSealed})
}

func (v *Validator) resolveFunctionAnnotation(an *ast.FunctionTypeAnnot) *types.Type {
	pop := v.pushScope(scope.KindBlock, ast.Span{})
	defer pop()

	var generics []*types.Type
	var genericPacks []*types.Pack
	for _, g := range an.Generics {
		if g.IsPack {
			p := v.Module.Arena.AddTypePack(types.GenericPackKind{Name: g.Name})
			genericPacks = append(genericPacks, p)
		} else {
			t := v.Module.Arena.AddType(types.GenericKind{Name: g.Name})
			generics = append(generics, t)
			v.currentScope.DefineType(g.Name, t)
		}
	}

	head := make([]*types.Type, len(an.Params))
	for i, p := range an.Params {
		head[i] = v.resolveAnnotation(p)
	}
	var tail *types.Pack
	if an.Variadic != nil {
		tail = v.Module.Arena.AddTypePack(types.VariadicPackKind{Element: v.resolveAnnotation(an.Variadic)})
	}
	args := v.Module.Arena.AddTypePack(types.ListPackKind{Head: head, Tail: tail})
	rets := v.resolveTypePackAnnotation(an.Rets)

	return v.Module.Arena.AddType(types.FunctionKind{
		Generics: generics, GenericPacks: genericPacks, Args: args, Rets: rets, ArgNames: an.ParamNames,
	})
}

func (v *Validator) resolveTypePackAnnotation(a ast.TypePackAnnotation) *types.Pack {
	if a == nil {
		return v.Module.Arena.AddTypePack(types.ListPackKind{})
	}
	switch an := a.(type) {
	case *ast.ListTypePackAnnot:
		head := make([]*types.Type, len(an.Head))
		for i, h := range an.Head {
			head[i] = v.resolveAnnotation(h)
		}
		var tail *types.Pack
		if an.Tail != nil {
			tail = v.resolveTypePackAnnotation(an.Tail)
		}
		return v.Module.Arena.AddTypePack(types.ListPackKind{Head: head, Tail: tail})
	case *ast.VariadicTypePackAnnot:
		return v.Module.Arena.AddTypePack(types.VariadicPackKind{Element: v.resolveAnnotation(an.Element)})
	case *ast.GenericTypePackAnnot:
		return v.Module.Arena.AddTypePack(types.GenericPackKind{Name: an.Name})
	default:
		return v.Module.Arena.AddTypePack(types.ListPackKind{})
	}
}
