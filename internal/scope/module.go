package scope

import (
	"github.com/reflectrpteam/luau/internal/ast"
	"github.com/reflectrpteam/luau/internal/clone"
	"github.com/reflectrpteam/luau/internal/diagnostics"
	"github.com/reflectrpteam/luau/internal/types"
)

// Module is the per-source-file checking result (spec.md §3 "Module
// record"): one body Arena, a smaller interface Arena holding
// only what the module re-exports, and the maps tying AST node
// identity to inference results the way the teacher's Module.TypeMap
// (`map[ast.Node]typesystem.Type`) does — generalized here into one map
// per distinct query the validator and LSP surface need to make,
// instead of a single TypeMap, because this checker also needs to
// answer "what pack did this call site produce" and "what annotation
// resolved to what type" independently (the teacher's language has no
// bidirectional "expected type" flow to record).
type Module struct {
	Name string
	File string

	Program *ast.Program
	Arena   *types.Arena

	// InterfaceArena holds only the re-exported surface: the types of
	// Exports. It is never frozen. Importers clone from here (internal/clone)
	// rather than reaching into Arena directly, so a change to an
	// importer's copy can never leak back into this module's own
	// checking state (spec.md §4.D "why the cloner exists").
	InterfaceArena *types.Arena
	Builtins       *types.Builtins
	Exports        map[string]*types.Type

	RootScope *Scope

	// Per-node inference results, keyed by AST node identity exactly as
	// the teacher's TypeMap is.
	ExprTypes       map[ast.Expr]*types.Type
	ExprPacks       map[ast.Expr]*types.Pack // CallExpr results, which are packs until adjusted to a single value
	AnnotationTypes map[ast.TypeAnnotation]*types.Type
	CallExpected    map[ast.Expr]*types.Pack // the expected-argument pack a CallExpr was checked against (bidirectional flow)

	Errors *diagnostics.Bag

	// Requires maps each RequireStat to the ModuleInfo naming the module
	// it requires (spec.md §4.G "Require Tracer"), as traced by
	// internal/require.
	Requires map[*ast.RequireStat]ModuleInfo

	IsVirtual bool // a definition-file-backed module (spec.md §4.H "definition files")

	// ContentHash identifies this module's source text for the
	// sqlite-backed incremental cache (internal/cache); empty for
	// virtual modules, which are never persisted since they're
	// reconstructed from Go code, not source text, on every process
	// start.
	ContentHash string

	interfaceBuiltinsCache *types.Builtins
}

// ModuleInfo is what the Require Tracer records for one require/include
// call argument (spec.md §4.G).
type ModuleInfo struct {
	Name     string
	Optional bool
}

// NewModule allocates an empty Module ready for the validator to
// populate.
func NewModule(name, file string, program *ast.Program) *Module {
	arena := types.NewArena()
	return &Module{
		Name:            name,
		File:            file,
		Program:         program,
		Arena:           arena,
		Builtins:        types.NewBuiltins(arena),
		InterfaceArena:  types.NewArena(),
		Exports:         make(map[string]*types.Type),
		RootScope:       NewModuleScope(ast.Span{Start: program.Pos(), End: program.End()}),
		ExprTypes:       make(map[ast.Expr]*types.Type),
		ExprPacks:       make(map[ast.Expr]*types.Pack),
		AnnotationTypes: make(map[ast.TypeAnnotation]*types.Type),
		CallExpected:    make(map[ast.Expr]*types.Pack),
		Errors:          diagnostics.NewBag(),
		Requires:        make(map[*ast.RequireStat]ModuleInfo),
	}
}

// interfaceBuiltins lazily creates the interface arena's persistent
// pool on first export, so a module with no exports never pays for it.
func (m *Module) interfaceBuiltins() *types.Builtins {
	if m.interfaceBuiltinsCache == nil {
		m.interfaceBuiltinsCache = types.NewBuiltins(m.InterfaceArena)
	}
	return m.interfaceBuiltinsCache
}

// Export clones t into the module's interface arena and records it
// under name (spec.md §4.D: "the cloner exists" precisely so that an
// importer's view of an export can never alias the exporting module's
// own, still-mutable body arena).
func (m *Module) Export(name string, t *types.Type) {
	c := clone.New(m.InterfaceArena, m.interfaceBuiltins())
	m.Exports[name] = c.Clone(t)
}
