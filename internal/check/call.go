package check

import (
	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/types"
)

// inferCall implements spec.md §4.F "Call" (the nine-step protocol):
//
//  1. infer the callee's type
//  2. for a method call (obj:method(...)), resolve `method` as a
//     property lookup on obj's type instead of inferring Fn directly
//  3. follow Bound indirections on the callee
//  4. if the callee is Any/Unknown/Error, short-circuit to Any
//  5. if the callee is a union of functions, require every option to
//     accept the same argument pack (spec.md "a call through a union
//     of functions must be valid for every option")
//  6. if the callee is generic, instantiate a fresh copy per call site
//     via a substituter within the module's own arena, so two call sites
//     never share inference state
//  7. prepend `self` to the actual argument pack for a method call
//  8. check the actual argument pack against the declared parameter
//     pack (arity via CountMismatch, each element via checkAssignableTo)
//  9. record the call's expected-argument pack (CallExpected) and
//     result pack (ExprPacks) for the bidirectional-flow / LSP surface
func (v *Validator) inferCall(call *ast.CallExpr) (head []*types.Type, tail *types.Pack) {
	var calleeType *types.Type
	var actualArgs []ast.Expr

	if call.MethodName != "" {
		receiverType := v.inferExpr(call.Fn)
		calleeType = v.checkIndexTypeFromType(call.Pos(), receiverType, call.MethodName)
		actualArgs = append([]ast.Expr{call.Fn}, call.Args...)
	} else {
		calleeType = v.inferExpr(call.Fn)
		actualArgs = call.Args
	}

	calleeType = types.Follow(calleeType)

	if isAnyOrError(calleeType) {
		for _, a := range call.Args {
			v.inferExpr(a)
		}
		resultHead := []*types.Type{v.Module.Builtins.Any}
		v.Module.ExprPacks[call] = v.Module.Arena.AddTypePack(types.ListPackKind{Head: resultHead, Tail: v.Module.Arena.AddTypePack(types.VariadicPackKind{Element: v.Module.Builtins.Any})})
		return resultHead, nil
	}

	if union, ok := calleeType.Kind.(types.UnionKind); ok {
		var fns []types.FunctionKind
		for _, opt := range union.Options {
			fn, ok := types.Follow(opt).Kind.(types.FunctionKind)
			if !ok {
				v.addError(call.Pos(), diagnostics.Data{Kind: diagnostics.KindCannotCallNonFunction, Actual: calleeType.String()})
				return []*types.Type{v.errType()}, nil
			}
			fns = append(fns, fn)
		}
		var lastHead []*types.Type
		var lastTail *types.Pack
		for _, fn := range fns {
			lastHead, lastTail = v.checkCallAgainst(call, fn, actualArgs)
		}
		return lastHead, lastTail
	}

	fn, ok := calleeType.Kind.(types.FunctionKind)
	if !ok {
		v.addError(call.Pos(), diagnostics.Data{Kind: diagnostics.KindCannotCallNonFunction, Actual: calleeType.String()})
		for _, a := range call.Args {
			v.inferExpr(a)
		}
		return []*types.Type{v.errType()}, nil
	}

	return v.checkCallAgainst(call, fn, actualArgs)
}

func (v *Validator) checkCallAgainst(call *ast.CallExpr, fn types.FunctionKind, actualArgs []ast.Expr) ([]*types.Type, *types.Pack) {
	// Step 6: instantiate generics fresh per call site.
	if len(fn.Generics) > 0 || len(fn.GenericPacks) > 0 {
		fn = v.instantiateGenericFunction(fn)
	}

	actualTypes := v.inferExprListTypes(actualArgs, len(actualArgs))
	wantHead, wantTail := flattenPack(fn.Args)

	v.Module.CallExpected[call] = fn.Args

	for i, want := range wantHead {
		if i >= len(actualTypes) {
			v.addError(call.Pos(), diagnostics.Data{
				Kind: diagnostics.KindCountMismatch, MismatchContext: diagnostics.ContextArg,
				ExpectedCount: len(wantHead), ActualCount: len(actualTypes),
			})
			break
		}
		v.checkAssignableTo(actualArgs[i].Pos(), want, actualTypes[i])
	}
	if len(actualTypes) > len(wantHead) {
		if wantTail != nil {
			if ve, ok := types.FollowPack(wantTail).Kind.(types.VariadicPackKind); ok {
				for i := len(wantHead); i < len(actualTypes); i++ {
					v.checkAssignableTo(actualArgs[i].Pos(), ve.Element, actualTypes[i])
				}
			}
		} else {
			v.addError(call.Pos(), diagnostics.Data{
				Kind: diagnostics.KindCountMismatch, MismatchContext: diagnostics.ContextArg,
				ExpectedCount: len(wantHead), ActualCount: len(actualTypes),
			})
		}
	}

	retHead, retTail := flattenPack(fn.Rets)
	v.Module.ExprPacks[call] = fn.Rets
	return retHead, retTail
}

// instantiateGenericFunction substitutes each of fn's declared generic
// parameters with a fresh Free variable local to this call site, so
// distinct call sites never share a binding for the same generic
// function's type parameter (spec.md §4.F step 6). Unlike
// internal/clone's arena-to-arena copy, this never touches fn's own
// Generic nodes in place — rebinding a function declaration's shared
// Generic node would corrupt every other call site that instantiates
// the same declaration — so it builds a by-identity substitution map
// up front and walks a fresh copy of Args/Rets applying it, leaving
// the original declaration (and any other in-flight instantiation)
// untouched.
func (v *Validator) instantiateGenericFunction(fn types.FunctionKind) types.FunctionKind {
	subst := map[*types.Type]*types.Type{}
	for _, g := range fn.Generics {
		subst[g] = v.Module.Arena.AddType(types.FreeKind{})
	}
	s := &substituter{arena: v.Module.Arena, subst: subst, seenTypes: map[*types.Type]*types.Type{}, seenPacks: map[*types.Pack]*types.Pack{}}
	return types.FunctionKind{
		Args: s.pack(fn.Args), Rets: s.pack(fn.Rets), ArgNames: fn.ArgNames, CheckedFunction: fn.CheckedFunction,
	}
}

// substituter is a scoped variant of internal/clone.Cloner: it copies
// within a single arena, replacing the nodes named in subst, rebuilding
// the Function, Table and Union nodes it walks through, and passing
// every other kind of node through unchanged (by identity, not by deep
// copy), so that structure outside those kinds stays shared with the
// generic signature.
type substituter struct {
	arena     *types.Arena
	subst     map[*types.Type]*types.Type
	seenTypes map[*types.Type]*types.Type
	seenPacks map[*types.Pack]*types.Pack
}

func (s *substituter) typ(t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	t = types.Follow(t)
	if repl, ok := s.subst[t]; ok {
		return repl
	}
	if existing, ok := s.seenTypes[t]; ok {
		return existing
	}
	switch k := t.Kind.(type) {
	case types.FunctionKind:
		placeholder := s.arena.AddType(types.ErrorKind{Message: "instantiation placeholder"})
		s.seenTypes[t] = placeholder
		s.arena.Rebind(placeholder, types.FunctionKind{
			Args: s.pack(k.Args), Rets: s.pack(k.Rets), ArgNames: k.ArgNames, CheckedFunction: k.CheckedFunction,
		})
		return placeholder
	case types.TableKind:
		placeholder := s.arena.AddType(types.ErrorKind{Message: "instantiation placeholder"})
		s.seenTypes[t] = placeholder
		newProps := make(map[string]*types.Property, len(k.Props))
		for name, p := range k.Props {
			newProps[name] = &types.Property{ReadType: s.typ(p.ReadType), WriteType: s.typ(p.WriteType)}
		}
		var indexer *types.TableIndexer
		if k.Indexer != nil {
			indexer = &types.TableIndexer{Key: s.typ(k.Indexer.Key), Value: s.typ(k.Indexer.Value)}
		}
		s.arena.Rebind(placeholder, types.TableKind{Props: newProps, Indexer: indexer, State: k.State, Name: k.Name})
		return placeholder
	case types.UnionKind:
		opts := make([]*types.Type, len(k.Options))
		for i, o := range k.Options {
			opts[i] = s.typ(o)
		}
		return s.arena.AddType(types.UnionKind{Options: opts})
	default:
		return t
	}
}

func (s *substituter) pack(p *types.Pack) *types.Pack {
	if p == nil {
		return nil
	}
	p = types.FollowPack(p)
	if existing, ok := s.seenPacks[p]; ok {
		return existing
	}
	switch k := p.Kind.(type) {
	case types.ListPackKind:
		head := make([]*types.Type, len(k.Head))
		for i, h := range k.Head {
			head[i] = s.typ(h)
		}
		return s.arena.AddTypePack(types.ListPackKind{Head: head, Tail: s.pack(k.Tail)})
	case types.VariadicPackKind:
		return s.arena.AddTypePack(types.VariadicPackKind{Element: s.typ(k.Element)})
	default:
		return p
	}
}
