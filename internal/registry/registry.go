package registry

import (
	"github.com/samber/lo"
)

// Registry is the in-memory catalog of report definitions. It has no
// behavior beyond lookup and filtering and is never mutated after Load.
type Registry struct {
	reports []Report
	byID    map[string]int
}

// New creates a registry from the given reports.
func New(reports []Report) *Registry {
	byID := make(map[string]int, len(reports))
	for i, r := range reports {
		byID[r.ID] = i
	}
	return &Registry{reports: reports, byID: byID}
}

// Get returns the report with the given ID.
func (r *Registry) Get(id string) (Report, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Report{}, false
	}
	return r.reports[i], true
}

// Len returns the number of registered reports.
func (r *Registry) Len() int {
	return len(r.reports)
}

// ListOption filters the result of List.
type ListOption func(*listOptions)

type listOptions struct {
	status   Status
	category string
}

// WithStatus filters reports by lifecycle status.
func WithStatus(status Status) ListOption {
	return func(o *listOptions) {
		o.status = status
	}
}

// WithCategory filters reports by category.
func WithCategory(category string) ListOption {
	return func(o *listOptions) {
		o.category = category
	}
}

// List returns reports in registry order, optionally filtered.
func (r *Registry) List(opts ...ListOption) []Report {
	var options listOptions
	for _, opt := range opts {
		opt(&options)
	}
	return lo.Filter(r.reports, func(report Report, _ int) bool {
		if options.status != "" && report.Status != options.status {
			return false
		}
		if options.category != "" && report.Category != options.category {
			return false
		}
		return true
	})
}
