package definitions

import "github.com/reflectrpteam/luau/internal/types"

// dbPackage defines the "db" virtual package: an opaque DbHandle class
// plus the functions to open one and query/exec through it, grounded
// on the teacher's initSqlPackage shape (a connection handle plus
// query/exec functions returning a Result) even though that file
// wasn't retrieved in full — the grpc/proto packages' Result<String, T>
// convention (virtual_packages_grpc.go) is what this package's error
// unions follow instead.
func dbPackage(r *Registry) *Package {
	handle := r.opaqueClass("DbHandle")
	rows := r.opaqueClass("DbRows")

	r.method(handle, "query", []*types.Type{r.Builtins.String}, r.result(rows))
	r.method(handle, "exec", []*types.Type{r.Builtins.String}, r.result(r.Builtins.Nil))
	r.method(handle, "close", nil, r.result(r.Builtins.Nil))

	r.method(rows, "next", nil, r.Builtins.Boolean)
	r.method(rows, "scan", nil, r.result(r.Builtins.String))

	return &Package{
		Name:    "db",
		Classes: map[string]*types.Type{"DbHandle": handle, "DbRows": rows},
		Symbols: map[string]*types.Type{
			"dbOpen": r.fn([]*types.Type{r.Builtins.String}, r.result(handle)),
		},
	}
}
