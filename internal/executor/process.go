package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/finbooks/reportctl/internal/fileutil"
)

// TypeProcess is the executor type for external console programs.
const TypeProcess = "process"

// newProcess creates an executor that invokes a separate program with
// CLI arguments derived from the report parameters. The working
// directory is pinned to the workspace root.
func newProcess(ctx context.Context, spec Spec) (Executor, error) {
	if spec.EntryPoint == "" {
		return nil, fmt.Errorf("entry point must not be empty")
	}
	if spec.WorkspaceRoot != "" && !fileutil.IsDir(spec.WorkspaceRoot) {
		return nil, fmt.Errorf("workspace root does not exist: %s", spec.WorkspaceRoot)
	}

	entry := spec.EntryPoint
	if filepath.Base(entry) != entry && !filepath.IsAbs(entry) {
		entry = filepath.Join(spec.WorkspaceRoot, entry)
	}

	args := append([]string{}, spec.Args...)
	// Parameters become flag arguments in sorted key order so the
	// command line is deterministic.
	for _, key := range sortedKeys(spec.Parameters) {
		args = append(args, "--"+key, spec.Parameters[key])
	}

	// nolint: gosec
	cmd := exec.CommandContext(ctx, entry, args...)
	return newCmdExecutor(cmd, spec), nil
}

func init() {
	Register(TypeProcess, newProcess)
}
