package definitions

import "github.com/reflectrpteam/luau/internal/types"

// httpPackage defines the "http" virtual package: an opaque HttpClient
// class plus a top-level fetch-style function, grounded on the
// teacher's http/web virtual packages (initHttpPackage,
// internal/modules/virtual_packages_web.go — not retrieved in full,
// but named directly in virtual_init.go's InitVirtualPackages
// dispatch list) generalized to SPEC_FULL.md's named HttpClient host
// type using the same opaque-Class-plus-Result convention as
// grpcPackage and dbPackage.
func httpPackage(r *Registry) *Package {
	client := r.opaqueClass("HttpClient")
	response := r.opaqueClass("HttpResponse")

	r.method(client, "get", []*types.Type{r.Builtins.String}, r.result(response))
	r.method(client, "post", []*types.Type{r.Builtins.String, r.Builtins.String}, r.result(response))

	r.method(response, "status", nil, r.Builtins.Number)
	r.method(response, "body", nil, r.Builtins.String)

	return &Package{
		Name:    "http",
		Classes: map[string]*types.Type{"HttpClient": client, "HttpResponse": response},
		Symbols: map[string]*types.Type{
			"httpClient": r.fn(nil, client),
		},
	}
}
