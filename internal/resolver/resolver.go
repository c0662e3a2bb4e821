// Package resolver orders requested reports so that every dependency
// runs strictly before its dependents.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finbooks/reportctl/internal/logger"
	"github.com/finbooks/reportctl/internal/registry"
)

// ErrCycleDetected is returned when the dependency graph contains a
// cycle. Cyclic registries are a fatal configuration error.
var ErrCycleDetected = errors.New("dependency cycle detected")

type mark int

const (
	unvisited mark = iota
	visiting
	visited
)

// Resolve returns a single deduplicated execution order for the
// requested report IDs, dependencies first. Requested or referenced IDs
// absent from the registry are skipped with a warning. The output is
// deterministic given a fixed registry and request order.
func Resolve(ctx context.Context, reg *registry.Registry, ids []string) ([]string, error) {
	r := &resolver{
		reg:   reg,
		marks: make(map[string]mark),
	}
	for _, id := range ids {
		if err := r.visit(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.order, nil
}

type resolver struct {
	reg   *registry.Registry
	marks map[string]mark
	path  []string
	order []string
}

func (r *resolver) visit(ctx context.Context, id string) error {
	switch r.marks[id] {
	case visited:
		return nil
	case visiting:
		// The node is on the current recursion path, so the registry
		// declares a cycle.
		cycle := append(r.path[r.cycleStart(id):], id)
		return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(cycle, " -> "))
	}

	report, ok := r.reg.Get(id)
	if !ok {
		logger.Warn(ctx, "Report not found in registry, skipping", "report", id)
		return nil
	}

	r.marks[id] = visiting
	r.path = append(r.path, id)

	for _, dep := range report.Dependencies {
		if err := r.visit(ctx, dep); err != nil {
			return err
		}
	}

	r.path = r.path[:len(r.path)-1]
	r.marks[id] = visited
	r.order = append(r.order, id)
	return nil
}

func (r *resolver) cycleStart(id string) int {
	for i, v := range r.path {
		if v == id {
			return i
		}
	}
	return 0
}
