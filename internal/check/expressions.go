package check

import (
	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/types"
)

// inferExpr resolves e's type, memoizing the result in
// Module.ExprTypes by node identity (spec.md §3 Module record).
func (v *Validator) inferExpr(e ast.Expr) *types.Type {
	if e == nil {
		return v.Module.Builtins.Any
	}
	if cached, ok := v.Module.ExprTypes[e]; ok {
		return cached
	}
	t := v.inferExprUncached(e)
	v.Module.ExprTypes[e] = t
	return t
}

func (v *Validator) inferExprUncached(e ast.Expr) *types.Type {
	switch ex := e.(type) {
	case *ast.NilLiteral:
		return v.Module.Builtins.Nil
	case *ast.BooleanLiteral:
		return v.Module.Arena.AddType(types.SingletonKind{Bool: ex.Value})
	case *ast.NumberLiteral:
		return v.Module.Builtins.Number
	case *ast.StringLiteral:
		return v.Module.Arena.AddType(types.SingletonKind{IsString: true, Str: ex.Value})
	case *ast.Vararg:
		return v.Module.Builtins.Any
	case *ast.Name:
		if b, ok := v.currentScope.Lookup(ex.Value); ok {
			return b.Type
		}
		v.addError(ex.Pos(), diagnostics.Data{Kind: diagnostics.KindUnknownSymbol, PropertyName: ex.Value})
		return v.errType()
	case *ast.ParenExpr:
		return v.inferExpr(ex.Inner)
	case *ast.TableConstructor:
		return v.inferTableConstructor(ex)
	case *ast.FunctionExpr:
		return v.inferFunctionExpr(ex, nil)
	case *ast.CallExpr:
		head, _ := v.inferCall(ex)
		if len(head) == 0 {
			return v.Module.Builtins.Nil
		}
		return head[0]
	case *ast.IndexName:
		return v.inferIndexName(ex)
	case *ast.IndexExpr:
		return v.inferIndexExpr(ex)
	case *ast.UnaryExpr:
		return v.inferUnary(ex)
	case *ast.BinaryExpr:
		left := v.inferExpr(ex.Left)
		right := v.inferExpr(ex.Right)
		return v.checkBinaryOp(ex.Pos(), ex.Op, left, right)
	case *ast.TypeAssertion:
		return v.inferTypeAssertion(ex)
	case *ast.IfExpr:
		v.inferExpr(ex.Cond)
		thenT := v.inferExpr(ex.Then)
		elseT := v.inferExpr(ex.Else)
		if v.unifier.IsSubtype(elseT, thenT) {
			return thenT
		}
		return v.Module.Arena.AddType(types.UnionKind{Options: []*types.Type{thenT, elseT}})
	default:
		return v.Module.Builtins.Any
	}
}

// inferExprListTypes infers an expression list, expanding the final
// expression's pack (if it's a CallExpr or Vararg) to fill out up to n
// results the way a multi-value Luau expression list does.
func (v *Validator) inferExprListTypes(exprs []ast.Expr, n int) []*types.Type {
	var out []*types.Type
	for i, e := range exprs {
		if i == len(exprs)-1 {
			if call, ok := e.(*ast.CallExpr); ok {
				head, tail := v.inferCall(call)
				out = append(out, head...)
				if tail != nil && n > len(out) {
					if ve, ok := types.FollowPack(tail).Kind.(types.VariadicPackKind); ok {
						for len(out) < n {
							out = append(out, ve.Element)
						}
					}
				}
				continue
			}
			if _, ok := e.(*ast.Vararg); ok {
				t := v.inferExpr(e)
				out = append(out, t)
				for len(out) < n {
					out = append(out, t)
				}
				continue
			}
		}
		out = append(out, v.inferExpr(e))
	}
	return out
}

func (v *Validator) inferTableConstructor(tc *ast.TableConstructor) *types.Type {
	props := make(map[string]*types.Property)
	var indexer *types.TableIndexer
	arrayIndex := 0
	for _, f := range tc.Fields {
		valueType := v.inferExpr(f.Value)
		if f.Key == nil {
			arrayIndex++
			if indexer == nil {
				indexer = &types.TableIndexer{Key: v.Module.Builtins.Number, Value: valueType}
			} else {
				indexer.Value = v.joinTypes(indexer.Value, valueType)
			}
			continue
		}
		if nameLit, ok := f.Key.(*ast.StringLiteral); ok {
			props[nameLit.Value] = &types.Property{ReadType: valueType, WriteType: valueType}
			continue
		}
		keyType := v.inferExpr(f.Key)
		if indexer == nil {
			indexer = &types.TableIndexer{Key: keyType, Value: valueType}
		} else {
			indexer.Value = v.joinTypes(indexer.Value, valueType)
		}
	}
	return v.Module.Arena.AddType(types.TableKind{Props: props, Indexer: indexer, State: types.TableSealed})
}

func (v *Validator) joinTypes(a, b *types.Type) *types.Type {
	if v.unifier.IsSubtype(b, a) {
		return a
	}
	if v.unifier.IsSubtype(a, b) {
		return b
	}
	return v.Module.Arena.AddType(types.UnionKind{Options: []*types.Type{a, b}})
}

func (v *Validator) inferFunctionExpr(fn *ast.FunctionExpr, receiver ast.TypeAnnotation) *types.Type {
	pop := v.pushScope(scope.KindFunction, spanOf(fn.Body))
	defer pop()

	var head []*types.Type
	var argNames []string
	if fn.HasSelf || receiver != nil {
		var selfType *types.Type
		if receiver != nil {
			selfType = v.resolveAnnotation(receiver)
		} else {
			selfType = v.Module.Builtins.Any
		}
		head = append(head, selfType)
		argNames = append(argNames, "self")
		v.currentScope.Define("self", &scope.Binding{Type: selfType})
	}
	for _, p := range fn.Params {
		var t *types.Type
		if p.Annotation != nil {
			t = v.resolveAnnotation(p.Annotation)
		} else {
			t = v.Module.Arena.AddType(types.FreeKind{})
		}
		head = append(head, t)
		argNames = append(argNames, p.Name.Value)
		v.currentScope.Define(p.Name.Value, &scope.Binding{Type: t, DefinedAt: p.Name.Pos()})
	}
	var tail *types.Pack
	if fn.Vararg {
		elem := v.Module.Builtins.Any
		if fn.VarargAnnot != nil {
			elem = v.resolveAnnotation(fn.VarargAnnot)
		}
		tail = v.Module.Arena.AddTypePack(types.VariadicPackKind{Element: elem})
	}
	argsPack := v.Module.Arena.AddTypePack(types.ListPackKind{Head: head, Tail: tail})

	var retsPack *types.Pack
	if fn.ReturnAnnot != nil {
		retsPack = v.resolveTypePackAnnotation(fn.ReturnAnnot)
	} else {
		retsPack = v.Module.Arena.AddTypePack(types.FreePackKind{})
	}
	v.currentScope.ReturnType = retsPack

	v.checkBlock(fn.Body)

	return v.Module.Arena.AddType(types.FunctionKind{Args: argsPack, Rets: retsPack, ArgNames: argNames})
}

func (v *Validator) inferIndexName(ix *ast.IndexName) *types.Type {
	objType := v.inferExpr(ix.Object)
	return v.checkIndexTypeFromType(ix.Pos(), objType, ix.Name)
}

func (v *Validator) inferIndexExpr(ix *ast.IndexExpr) *types.Type {
	objType := v.inferExpr(ix.Object)
	keyType := v.inferExpr(ix.Key)
	obj := types.Follow(objType)
	if tk, ok := obj.Kind.(types.TableKind); ok {
		if lit, ok := types.Follow(keyType).Kind.(types.SingletonKind); ok && lit.IsString {
			if prop, ok := tk.Props[lit.Str]; ok {
				return propertyReadType(prop)
			}
		}
		if tk.Indexer != nil {
			if v.unifier.IsSubtype(keyType, tk.Indexer.Key) {
				return tk.Indexer.Value
			}
		}
		v.addError(ix.Pos(), diagnostics.Data{Kind: diagnostics.KindNotATable, Actual: obj.String()})
		return v.errType()
	}
	if isAnyOrError(obj) {
		return v.Module.Builtins.Any
	}
	v.addError(ix.Pos(), diagnostics.Data{Kind: diagnostics.KindNotATable, Actual: obj.String()})
	return v.errType()
}

// checkIndexTypeFromType implements spec.md §4.F "checkIndexTypeFromType":
// indexing by name against a table, class, or optional/union thereof.
// A union requires every option to carry the property (spec.md
// "MissingUnionProperty"); an optional (T?) flags "OptionalValueAccess"
// rather than failing outright, since Luau still infers a result type
// for it (narrowed code paths handle the nil case elsewhere).
func (v *Validator) checkIndexTypeFromType(pos ast.Position, objType *types.Type, name string) *types.Type {
	obj := types.Follow(objType)

	if isAnyOrError(obj) {
		return v.Module.Builtins.Any
	}

	if union, ok := obj.Kind.(types.UnionKind); ok {
		hasNil := false
		var resultTypes []*types.Type
		var missingFrom []string
		for _, opt := range union.Options {
			o := types.Follow(opt)
			if _, isNil := o.Kind.(types.PrimitiveKind); isNil && o.Kind.(types.PrimitiveKind).Name == "nil" {
				hasNil = true
				continue
			}
			prop := v.lookupProperty(o, name)
			if prop == nil {
				missingFrom = append(missingFrom, o.String())
				continue
			}
			resultTypes = append(resultTypes, propertyReadType(prop))
		}
		if len(missingFrom) > 0 {
			v.addError(pos, diagnostics.Data{Kind: diagnostics.KindMissingUnionProperty, PropertyName: name})
			return v.errType()
		}
		if hasNil {
			v.addError(pos, diagnostics.Data{Kind: diagnostics.KindOptionalValueAccess})
		}
		if len(resultTypes) == 0 {
			return v.errType()
		}
		result := resultTypes[0]
		for _, r := range resultTypes[1:] {
			result = v.joinTypes(result, r)
		}
		return result
	}

	prop := v.lookupProperty(obj, name)
	if prop == nil {
		v.addError(pos, diagnostics.Data{Kind: diagnostics.KindUnknownProperty, PropertyName: name})
		return v.errType()
	}
	return propertyReadType(prop)
}

func (v *Validator) lookupProperty(obj *types.Type, name string) *types.Property {
	switch k := obj.Kind.(type) {
	case types.TableKind:
		if p, ok := k.Props[name]; ok {
			return p
		}
	case types.ClassKind:
		for c := obj; c != nil; {
			ck, ok := c.Kind.(types.ClassKind)
			if !ok {
				break
			}
			if p, ok := ck.Props[name]; ok {
				return p
			}
			c = ck.Parent
		}
	case types.MetatableKind:
		if tk, ok := types.Follow(k.Table).Kind.(types.TableKind); ok {
			if p, ok := tk.Props[name]; ok {
				return p
			}
		}
	}
	return nil
}

func propertyReadType(p *types.Property) *types.Type {
	if p.ReadType != nil {
		return p.ReadType
	}
	return p.WriteType
}

func isAnyOrError(t *types.Type) bool {
	switch t.Kind.(type) {
	case types.AnyKind, types.ErrorKind, types.UnknownKind:
		return true
	default:
		return false
	}
}

func (v *Validator) inferUnary(ex *ast.UnaryExpr) *types.Type {
	operandType := v.inferExpr(ex.Operand)
	switch ex.Op {
	case ast.UnaryMinus:
		v.checkAssignableTo(ex.Pos(), v.Module.Builtins.Number, operandType)
		return v.Module.Builtins.Number
	case ast.UnaryNot:
		return v.Module.Builtins.Boolean
	case ast.UnaryLen:
		return v.Module.Builtins.Number
	}
	return v.Module.Builtins.Any
}

// checkBinaryOp implements spec.md §4.F "Binary": arithmetic ops
// require both sides number (metatable op overloads are not modeled),
// ==/~= accept any pair of operands and yield boolean, the ordering
// comparisons (<, <=, >, >=) require one operand type to be a subtype
// of the other (else TypesAreUnrelated) and yield boolean, concat
// requires string-or-number on both sides and
// yields string, and/or short-circuit and yield the join of both sides.
func (v *Validator) checkBinaryOp(pos ast.Position, op ast.BinaryOp, left, right *types.Type) *types.Type {
	switch op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinFloorDiv, ast.BinMod, ast.BinPow:
		v.checkAssignableTo(pos, v.Module.Builtins.Number, left)
		v.checkAssignableTo(pos, v.Module.Builtins.Number, right)
		return v.Module.Builtins.Number
	case ast.BinConcat:
		v.checkConcatOperand(pos, left)
		v.checkConcatOperand(pos, right)
		return v.Module.Builtins.String
	case ast.BinEq, ast.BinNeq:
		return v.Module.Builtins.Boolean
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if !v.unifier.IsSubtype(left, right) && !v.unifier.IsSubtype(right, left) {
			v.addError(pos, diagnostics.Data{
				Kind: diagnostics.KindTypesAreUnrelated, Expected: left.String(), Actual: right.String(),
			})
		}
		return v.Module.Builtins.Boolean
	case ast.BinAnd, ast.BinOr:
		return v.joinTypes(left, right)
	default:
		v.addError(pos, diagnostics.Data{Kind: diagnostics.KindCannotInferBinaryOp, Message: "unrecognized operator"})
		return v.errType()
	}
}

func (v *Validator) checkConcatOperand(pos ast.Position, t *types.Type) {
	f := types.Follow(t)
	if isAnyOrError(f) {
		return
	}
	if pk, ok := f.Kind.(types.PrimitiveKind); ok && (pk.Name == "string" || pk.Name == "number") {
		return
	}
	if _, ok := f.Kind.(types.SingletonKind); ok {
		return
	}
	v.addError(pos, diagnostics.Data{Kind: diagnostics.KindTypeMismatch, Expected: "string | number", Actual: f.String()})
}

func (v *Validator) inferTypeAssertion(ex *ast.TypeAssertion) *types.Type {
	operandType := v.inferExpr(ex.Operand)
	target := v.resolveAnnotation(ex.Annotation)
	if !v.unifier.IsSubtype(operandType, target) && !v.unifier.IsSubtype(target, operandType) {
		v.addError(ex.Pos(), diagnostics.Data{
			Kind: diagnostics.KindTypesAreUnrelated, Expected: target.String(), Actual: operandType.String(),
		})
	}
	return target
}
