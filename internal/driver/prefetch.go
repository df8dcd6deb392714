package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"yo/internal/ast"
)

// PrefetchModules resolves every name in names against loader concurrently,
// before any of the resulting declarations reach the semantic core — the
// core itself never runs a background goroutine (spec.md §5: "no background
// work"), so all concurrency for `use` directive resolution lives here, one
// layer above the single-threaded Type Interner/Callable Registry/Scope.
//
// Grounded on surge/internal/driver/parallel.go's TokenizeDir: an
// errgroup.Group bounded to GOMAXPROCS, writing into a pre-sized result
// slice by index so no mutex is needed, one goroutine per named module.
func PrefetchModules(ctx context.Context, loader ModuleLoader, names []string) (map[string]*ast.File, error) {
	if loader == nil || len(names) == 0 {
		return nil, nil
	}

	results := make([]*ast.File, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(names)))

	for i, name := range names {
		g.Go(func(i int, name string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				file, err := loader.Load(name)
				if err != nil {
					return fmt.Errorf("loading module %q: %w", name, err)
				}
				results[i] = file
				return nil
			}
		}(i, name))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make(map[string]*ast.File, len(names))
	for i, name := range names {
		loaded[name] = results[i]
	}
	return loaded, nil
}
