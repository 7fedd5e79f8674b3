package definitions

import "github.com/reflectrpteam/luau/internal/types"

// fn builds a non-generic function type from a fixed argument list and
// a single (optional) return value — the common shape for this
// package's host bindings, since spec.md's virtual packages expose
// plain functions, never generic ones.
func (r *Registry) fn(args []*types.Type, ret *types.Type) *types.Type {
	argPack := r.Arena.AddTypePack(types.ListPackKind{Head: args})
	var retPack *types.Pack
	if ret == nil {
		retPack = r.Arena.AddTypePack(types.ListPackKind{})
	} else {
		retPack = r.Arena.AddTypePack(types.ListPackKind{Head: []*types.Type{ret}})
	}
	return r.Arena.AddType(types.FunctionKind{Args: argPack, Rets: retPack})
}

// opaqueClass allocates a nominal Class type (internal/types.ClassKind:
// "related only through explicit Parent links, never structurally"),
// standing in for a host resource handle a checked module can receive
// and pass around but never construct a literal of.
func (r *Registry) opaqueClass(name string) *types.Type {
	return r.Arena.AddType(types.ClassKind{Name: name, Props: map[string]*types.Property{}})
}

// result builds the `string | T` error-union this package's fallible
// host operations return, the Class-graph equivalent of the teacher's
// Result<String, T> virtual-package convention (virtual_packages_grpc.go).
func (r *Registry) result(ok *types.Type) *types.Type {
	return r.Arena.AddType(types.UnionKind{Options: []*types.Type{r.Builtins.String, ok}})
}

// method registers a method on class's own Props map, prepending class
// itself as the implicit `self` argument so `handle:query(...)` type-
// checks through the validator's ordinary method-call self-prepending
// (internal/check/call.go step 7), exactly as it would for any
// user-declared metatable method.
func (r *Registry) method(class *types.Type, name string, args []*types.Type, ret *types.Type) {
	ck := class.Kind.(types.ClassKind)
	ck.Props[name] = &types.Property{ReadType: r.fn(append([]*types.Type{class}, args...), ret)}
}
