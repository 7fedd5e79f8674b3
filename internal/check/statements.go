package check

import (
	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/types"
)

func (v *Validator) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stats {
		v.checkStat(s)
	}
}

func (v *Validator) checkStat(s ast.Stat) {
	switch st := s.(type) {
	case *ast.LocalStat:
		v.checkLocalStat(st)
	case *ast.AssignStat:
		v.checkAssignStat(st)
	case *ast.CompoundAssignStat:
		v.checkCompoundAssignStat(st)
	case *ast.ReturnStat:
		v.checkReturnStat(st)
	case *ast.BreakStat, *ast.ContinueStat:
		if v.loopDepth == 0 {
			v.addError(s.Pos(), diagnostics.Data{Kind: diagnostics.KindGenericError, Message: "break/continue outside a loop"})
		}
	case *ast.ExprStat:
		if st.Call != nil {
			v.inferExpr(st.Call)
		}
	case *ast.DoStat:
		pop := v.pushScope(scope.KindBlock, spanOf(st.Body))
		v.checkBlock(st.Body)
		pop()
	case *ast.WhileStat:
		v.inferExpr(st.Cond)
		v.loopDepth++
		pop := v.pushScope(scope.KindBlock, spanOf(st.Body))
		v.checkBlock(st.Body)
		pop()
		v.loopDepth--
	case *ast.RepeatStat:
		v.loopDepth++
		pop := v.pushScope(scope.KindBlock, spanOf(st.Body))
		v.checkBlock(st.Body)
		// the repeat condition can see locals from the body, per Luau
		// scoping rules, so it's checked before popping the scope.
		v.inferExpr(st.Cond)
		pop()
		v.loopDepth--
	case *ast.IfStat:
		v.checkIfStat(st)
	case *ast.NumericForStat:
		v.checkNumericForStat(st)
	case *ast.GenericForStat:
		v.checkGenericForStat(st)
	case *ast.FunctionStat:
		v.checkFunctionStat(st)
	case *ast.TypeAliasStat:
		v.checkTypeAliasStat(st)
	case *ast.RequireStat:
		v.checkRequireStat(st)
	}
}

// checkLocalStat implements spec.md §4.F "Local assignment": each
// local's declared annotation (if any) is resolved first and checked
// against its initializer's inferred type; an unannotated local takes
// its initializer's type directly. Extra names with no initializer get
// a Free variable (spec.md "an uninitialized local is inferred, not
// nil", matching Luau's `local x` without assignment).
func (v *Validator) checkLocalStat(st *ast.LocalStat) {
	valueTypes := v.inferExprListTypes(st.Values, len(st.Names))

	for i, name := range st.Names {
		var declared *types.Type
		if i < len(st.Annotations) && st.Annotations[i] != nil {
			declared = v.resolveAnnotation(st.Annotations[i])
		}
		var valueType *types.Type
		if i < len(valueTypes) {
			valueType = valueTypes[i]
		}

		result := declared
		if result == nil {
			if valueType != nil {
				result = valueType
			} else {
				result = v.Module.Arena.AddType(types.FreeKind{})
			}
		} else if valueType != nil {
			v.checkAssignableTo(name.Pos(), declared, valueType)
		}

		v.currentScope.Define(name.Value, &scope.Binding{Type: result, DefinedAt: name.Pos()})
		v.Module.ExprTypes[name] = result
	}
}

func (v *Validator) checkAssignStat(st *ast.AssignStat) {
	valueTypes := v.inferExprListTypes(st.Values, len(st.Targets))
	for i, target := range st.Targets {
		targetType := v.inferExpr(target)
		if i < len(valueTypes) && valueTypes[i] != nil {
			v.checkAssignableTo(target.Pos(), targetType, valueTypes[i])
		}
	}
}

func (v *Validator) checkCompoundAssignStat(st *ast.CompoundAssignStat) {
	targetType := v.inferExpr(st.Target)
	valueType := v.inferExpr(st.Value)
	resultType := v.checkBinaryOp(st.Target.Pos(), st.Op, targetType, valueType)
	v.checkAssignableTo(st.Target.Pos(), targetType, resultType)
}

func (v *Validator) checkReturnStat(st *ast.ReturnStat) {
	valueTypes := v.inferExprListTypes(st.Values, len(st.Values))
	fnScope := v.currentScope.EnclosingFunction()
	if fnScope == nil || fnScope.ReturnType == nil {
		return
	}
	wantHead, wantTail := flattenPack(fnScope.ReturnType)
	for i, want := range wantHead {
		if i >= len(valueTypes) {
			v.addError(st.Pos(), diagnostics.Data{
				Kind: diagnostics.KindCountMismatch, MismatchContext: diagnostics.ContextReturn,
				ExpectedCount: len(wantHead), ActualCount: len(valueTypes),
			})
			break
		}
		v.checkAssignableTo(st.Pos(), want, valueTypes[i])
	}
	if wantTail != nil {
		for i := len(wantHead); i < len(valueTypes); i++ {
			if ve, ok := wantTail.Kind.(types.VariadicPackKind); ok {
				v.checkAssignableTo(st.Pos(), ve.Element, valueTypes[i])
			}
		}
	}
}

func flattenPack(p *types.Pack) (head []*types.Type, tail *types.Pack) {
	p = types.FollowPack(p)
	if lp, ok := p.Kind.(types.ListPackKind); ok {
		return lp.Head, lp.Tail
	}
	if _, ok := p.Kind.(types.VariadicPackKind); ok {
		return nil, p
	}
	return nil, nil
}

func (v *Validator) checkIfStat(st *ast.IfStat) {
	v.inferExpr(st.Cond)
	pop := v.pushScope(scope.KindBlock, spanOf(st.Then))
	v.checkBlock(st.Then)
	pop()
	for _, clause := range st.ElseIfs {
		v.inferExpr(clause.Cond)
		p := v.pushScope(scope.KindBlock, spanOf(clause.Body))
		v.checkBlock(clause.Body)
		p()
	}
	if st.Else != nil {
		p := v.pushScope(scope.KindBlock, spanOf(st.Else))
		v.checkBlock(st.Else)
		p()
	}
}

// checkNumericForStat implements spec.md §4.F "Numeric for": from/to/
// step must each be assignable to number; the loop variable is bound
// as number in the body scope.
func (v *Validator) checkNumericForStat(st *ast.NumericForStat) {
	fromT := v.inferExpr(st.From)
	toT := v.inferExpr(st.To)
	v.checkAssignableTo(st.From.Pos(), v.Module.Builtins.Number, fromT)
	v.checkAssignableTo(st.To.Pos(), v.Module.Builtins.Number, toT)
	if st.Step != nil {
		stepT := v.inferExpr(st.Step)
		v.checkAssignableTo(st.Step.Pos(), v.Module.Builtins.Number, stepT)
	}

	v.loopDepth++
	pop := v.pushScope(scope.KindBlock, spanOf(st.Body))
	varType := v.Module.Builtins.Number
	if st.Annotation != nil {
		varType = v.resolveAnnotation(st.Annotation)
	}
	v.currentScope.Define(st.Var.Value, &scope.Binding{Type: varType, DefinedAt: st.Var.Pos()})
	v.checkBlock(st.Body)
	pop()
	v.loopDepth--
}

// checkGenericForStat implements spec.md §4.F "Generic for (for...in)":
// the iterated expression(s) resolve to an iterator function pack (the
// `__iter` metamethod protocol); each loop variable is bound from the
// iterator's declared return pack.
func (v *Validator) checkGenericForStat(st *ast.GenericForStat) {
	valueTypes := v.inferExprListTypes(st.Values, len(st.Values))

	var iterRets []*types.Type
	if len(valueTypes) > 0 {
		iterRets = v.resolveIteratorProtocol(st.Pos(), valueTypes[0])
	}

	v.loopDepth++
	pop := v.pushScope(scope.KindBlock, spanOf(st.Body))
	for i, name := range st.Names {
		var t *types.Type
		if i < len(st.Annotations) && st.Annotations[i] != nil {
			t = v.resolveAnnotation(st.Annotations[i])
		} else if i < len(iterRets) {
			t = iterRets[i]
		} else {
			t = v.Module.Builtins.Any
		}
		v.currentScope.Define(name.Value, &scope.Binding{Type: t, DefinedAt: name.Pos()})
	}
	v.checkBlock(st.Body)
	pop()
	v.loopDepth--
}

// resolveIteratorProtocol resolves the `__iter` metamethod (spec.md §8
// "iterator protocol via __iter"): if subject is directly a function,
// its return pack supplies the loop variables; if it's a table whose
// metatable carries an `__iter` function property, that function's
// *call* return pack (a generator function) supplies them instead.
func (v *Validator) resolveIteratorProtocol(pos ast.Position, subject *types.Type) []*types.Type {
	subject = types.Follow(subject)
	if fn, ok := subject.Kind.(types.FunctionKind); ok {
		head, _ := flattenPack(fn.Rets)
		return head
	}
	if mt, ok := subject.Kind.(types.MetatableKind); ok {
		metaTable := types.Follow(mt.Metatable)
		if tk, ok := metaTable.Kind.(types.TableKind); ok {
			if prop, ok := tk.Props["__iter"]; ok && prop.ReadType != nil {
				if fn, ok := types.Follow(prop.ReadType).Kind.(types.FunctionKind); ok {
					genHead, _ := flattenPack(fn.Rets)
					if len(genHead) > 0 {
						if genFn, ok := types.Follow(genHead[0]).Kind.(types.FunctionKind); ok {
							head, _ := flattenPack(genFn.Rets)
							return head
						}
					}
				}
			}
		}
	}
	v.addError(pos, diagnostics.Data{Kind: diagnostics.KindGenericError, Message: "cannot iterate over this type"})
	return nil
}

func (v *Validator) checkFunctionStat(st *ast.FunctionStat) {
	fnType := v.inferFunctionExpr(st.Fn, st.Receiver)
	if st.IsLocal {
		v.currentScope.Define(st.Name.Value, &scope.Binding{Type: fnType, DefinedAt: st.Name.Pos()})
	}
}

func (v *Validator) checkTypeAliasStat(st *ast.TypeAliasStat) {
	resolved := v.resolveAnnotation(st.Value)
	v.currentScope.DefineType(st.Name, resolved)
	if st.Exported {
		v.Module.Export(st.Name, resolved)
	}
}

// checkRequireStat implements the "Require" half of spec.md §4.F: the
// actual module resolution was already performed by internal/require +
// pkg/resolver before Check() runs (the orchestrator populates
// Module.Requires up front, spec.md §4.G/H ordering), so this only
// binds the local name to the resolved module's export table type, or
// to an Error-suppressed type if the module never resolved (e.g. it
// failed to parse, or the cycle policy substituted a placeholder).
func (v *Validator) checkRequireStat(st *ast.RequireStat) {
	info, ok := v.Module.Requires[st]
	if !ok {
		if st.Local != nil {
			v.currentScope.Define(st.Local.Value, &scope.Binding{Type: v.errType(), DefinedAt: st.Pos()})
		}
		return
	}
	resultType, ok := v.resolveModuleType(info)
	if !ok {
		resultType = v.errType()
	}
	if st.Local != nil {
		v.currentScope.Define(st.Local.Value, &scope.Binding{Type: resultType, DefinedAt: st.Pos()})
	}
}

// resolveModuleType is filled in by the Build Orchestrator via
// RequireResolver before Check() runs a module whose body contains a
// RequireStat; a module checked standalone (e.g. a unit test) simply
// never populates it and gets the Error-type fallback above.
func (v *Validator) resolveModuleType(info scope.ModuleInfo) (*types.Type, bool) {
	if v.RequireResolver == nil {
		return nil, false
	}
	return v.RequireResolver(info)
}
