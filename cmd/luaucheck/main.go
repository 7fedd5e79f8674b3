// Command luaucheck is the batch checker: spec.md §1's second listed
// client, alongside editor tooling (cmd/luau-lsp) and the linter
// pipeline. It walks one or more paths, registers every source file it
// finds with a Build Orchestrator (internal/frontend), checks them all,
// and prints diagnostics to stderr — nonzero exit if any module reported
// an error, grounded on the teacher's cmd/funxy/main.go "collect errors,
// print them, os.Exit(1) if any" discipline (runModule/handleTest).
package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/reflectrpteam/luau/internal/cache"
	"github.com/reflectrpteam/luau/internal/config"
	"github.com/reflectrpteam/luau/internal/frontend"
	"github.com/reflectrpteam/luau/internal/rpc"
	"github.com/reflectrpteam/luau/internal/scope"
	"github.com/reflectrpteam/luau/internal/sourcescan"
	"github.com/reflectrpteam/luau/internal/types"
	"github.com/reflectrpteam/luau/pkg/resolver"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [--cache <path>] [--serve <addr>] <path> [path2...]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var cachePath, serveAddr string
	var paths []string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--cache" && i+1 < len(args):
			i++
			cachePath = args[i]
		case args[i] == "--serve" && i+1 < len(args):
			i++
			serveAddr = args[i]
		case strings.HasPrefix(args[i], "-"):
			fmt.Fprintf(os.Stderr, "unrecognized flag: %s\n", args[i])
			os.Exit(1)
		default:
			paths = append(paths, args[i])
		}
	}
	if len(paths) == 0 {
		usage()
		os.Exit(1)
	}

	fe := frontend.New(config.FeatureFlags{}, config.DefaultLimits())

	if cachePath != "" {
		store, err := cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "luaucheck: opening cache: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		fe.Cache = store
	}

	res := resolver.NewFSResolver()
	fe.Resolve = moduleExportResolver(fe)

	files, err := discoverFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luaucheck: %v\n", err)
		os.Exit(1)
	}

	for _, f := range files {
		content, hash, err := res.ReadSource(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "luaucheck: reading %s: %v\n", f, err)
			continue
		}
		program := sourcescan.Scan(f, content)
		if mode, ok := config.ModeFromHotComments(sourcescan.HotCommentTexts(program)); ok && mode == config.ModeNoCheck {
			continue
		}
		fe.AddSourceWithHash(f, program, hash)
	}

	if serveAddr != "" {
		lis, err := net.Listen("tcp", serveAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "luaucheck: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "luaucheck: serving on %s\n", serveAddr)
		if err := rpc.Serve(lis, fe); err != nil {
			fmt.Fprintf(os.Stderr, "luaucheck: %v\n", err)
			os.Exit(1)
		}
		return
	}

	results := fe.CheckAll(frontend.ViewNormal)
	hasErrors := false
	for _, r := range results {
		if r == nil || len(r.Errors) == 0 {
			continue
		}
		hasErrors = true
		for _, e := range r.Errors {
			fmt.Fprintln(os.Stderr, formatDiagnostic(r.Module.Name, e.Error()))
		}
	}

	if hasErrors {
		os.Exit(1)
	}
}

func discoverFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			for _, ext := range config.SourceFileExtensions {
				if strings.HasSuffix(path, ext) {
					out = append(out, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

// moduleExportResolver builds the Frontend.Resolve hook: a dependency's
// exported surface, once that dependency has itself been Checked, is
// re-packaged as a single sealed table type so the requiring module can
// bind its local require name to it (internal/check's
// checkRequireStat). Exports are read directly off the dependency's
// InterfaceArena rather than cloned into the caller's arena, and the
// wrapping table is allocated in that same InterfaceArena; the arena is
// not frozen, so it stays writable after Check.
func moduleExportResolver(fe *frontend.Frontend) func(scope.ModuleInfo) (*types.Type, bool) {
	return func(info scope.ModuleInfo) (*types.Type, bool) {
		dep, ok := fe.LookupChecked(info.Name, frontend.ViewNormal)
		if !ok {
			return nil, false
		}
		props := make(map[string]*types.Property, len(dep.Exports))
		for name, t := range dep.Exports {
			props[name] = &types.Property{ReadType: t, WriteType: t}
		}
		return dep.InterfaceArena.AddType(types.TableKind{
			Props: props,
			State: types.TableSealed,
			Name:  dep.Name,
		}), true
	}
}

func formatDiagnostic(module, msg string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fmt.Sprintf("%s: %s", module, msg)
	}
	const red = "\033[31m"
	const reset = "\033[39m"
	return fmt.Sprintf("%s%s:%s %s", red, module, reset, msg)
}
