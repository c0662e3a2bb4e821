// Package executor runs a report's underlying job out-of-process.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Executor is the capability interface for running one report job.
type Executor interface {
	// SetStdout sets the writer for the job's standard output.
	SetStdout(out io.Writer)
	// SetStderr sets the writer for the job's standard error.
	SetStderr(out io.Writer)
	// Kill sends the given signal to the job's process group.
	Kill(sig os.Signal) error
	// Run executes the job and blocks until it finishes. A non-nil
	// error means the job failed.
	Run(ctx context.Context) error
}

// ProgressFunc receives monotonically non-decreasing completion signals
// while a job executes.
type ProgressFunc func(current, total int, message string)

// Spec describes one job to execute.
type Spec struct {
	// Type selects the executor implementation.
	Type string
	// EntryPoint is the script or executable to run, relative to
	// WorkspaceRoot unless absolute.
	EntryPoint string
	// Args are extra positional arguments.
	Args []string
	// Parameters are the fully resolved report parameters.
	Parameters map[string]string
	// WorkspaceRoot is the working directory the job runs in.
	WorkspaceRoot string
	// OutputTarget is where the run's durable artifact is written.
	OutputTarget string
	// NotebookRunner is the binary used for jobscript executions.
	NotebookRunner string
	// KernelName is the kernel for jobscript executions.
	KernelName string
	// Progress is an optional progress hook.
	Progress ProgressFunc
}

func (s Spec) reportProgress(current, total int, message string) {
	if s.Progress != nil {
		s.Progress(current, total, message)
	}
}

// Creator is a function type that creates an Executor for a spec.
type Creator func(ctx context.Context, spec Spec) (Executor, error)

// ErrUnknownExecutorType is returned for an executor type with no
// registered implementation. The factory never falls back to a default
// strategy, since doing so would run the wrong job.
var ErrUnknownExecutorType = errors.New("unknown executor type")

var executors = make(map[string]Creator)

// Register registers an executor implementation under the given name.
func Register(name string, creator Creator) {
	executors[name] = creator
}

// NewExecutor creates the executor for the spec's declared type.
func NewExecutor(ctx context.Context, spec Spec) (Executor, error) {
	creator, ok := executors[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExecutorType, spec.Type)
	}
	return creator(ctx, spec)
}

// IsValidType reports whether an executor is registered under the name.
func IsValidType(name string) bool {
	_, ok := executors[name]
	return ok
}
