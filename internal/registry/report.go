package registry

// ExecutorType identifies the execution strategy declared for a report.
type ExecutorType string

const (
	// ExecutorTypeJobScript runs a computational document (notebook) job.
	ExecutorTypeJobScript ExecutorType = "jobscript"
	// ExecutorTypeProcess runs an external program as a child process.
	ExecutorTypeProcess ExecutorType = "process"
)

func (e ExecutorType) String() string {
	return string(e)
}

// IsValid returns true for a known executor type.
func (e ExecutorType) IsValid() bool {
	switch e {
	case ExecutorTypeJobScript, ExecutorTypeProcess:
		return true
	default:
		return false
	}
}

// Status is the lifecycle status of a report.
type Status string

const (
	StatusActive     Status = "active"
	StatusPOC        Status = "poc"
	StatusPlanned    Status = "planned"
	StatusDeprecated Status = "deprecated"
)

func (s Status) String() string {
	return string(s)
}

// IsValid returns true for a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPOC, StatusPlanned, StatusDeprecated:
		return true
	default:
		return false
	}
}

// Report is one declared unit of work producing a dated financial
// artifact. Reports are immutable after loading; a stale in-memory copy
// must be reloaded explicitly.
type Report struct {
	// ID is the unique identity of the report.
	ID string `json:"id"`
	// Name is the display label, passed through unchanged.
	Name string `json:"name"`
	// Category groups related reports (e.g. trial_balance, consolidation).
	Category string `json:"category,omitempty"`
	// ExecutorType selects the execution strategy.
	ExecutorType ExecutorType `json:"executorType"`
	// EntryPoint is the path of the script or executable to run,
	// relative to the workspace root.
	EntryPoint string `json:"entryPoint"`
	// Args are extra positional arguments for process reports.
	Args []string `json:"args,omitempty"`
	// Dependencies lists report IDs that must complete first.
	Dependencies []string `json:"dependencies,omitempty"`
	// DefaultParameters may contain the sentinel value "auto", resolved
	// at execution time.
	DefaultParameters map[string]string `json:"defaultParameters,omitempty"`
	// Status is the lifecycle status of the report.
	Status Status `json:"status"`
}

// Executable reports true when the report is eligible for execution.
// Only active and proof-of-concept reports are eligible; the orchestrator
// still attempts others but logs a warning.
func (r Report) Executable() bool {
	return r.Status == StatusActive || r.Status == StatusPOC
}
