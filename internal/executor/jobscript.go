package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/finbooks/reportctl/internal/fileutil"
)

// TypeJobScript is the executor type for notebook jobs.
const TypeJobScript = "jobscript"

// newJobScript creates an executor that parameterizes and runs a
// computational document through the configured notebook runner,
// writing a fully executed copy to the output target.
func newJobScript(ctx context.Context, spec Spec) (Executor, error) {
	entry := spec.EntryPoint
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(spec.WorkspaceRoot, entry)
	}
	if !fileutil.FileExists(entry) {
		return nil, fmt.Errorf("notebook not found: %s", entry)
	}
	if spec.OutputTarget == "" {
		return nil, fmt.Errorf("output target must not be empty")
	}
	if err := fileutil.EnsureDir(filepath.Dir(spec.OutputTarget)); err != nil {
		return nil, err
	}

	runner := spec.NotebookRunner
	if runner == "" {
		runner = "papermill"
	}

	args := []string{entry, spec.OutputTarget, "--cwd", spec.WorkspaceRoot}
	if spec.KernelName != "" {
		args = append(args, "-k", spec.KernelName)
	}
	for _, key := range sortedKeys(spec.Parameters) {
		args = append(args, "-p", key, spec.Parameters[key])
	}

	// nolint: gosec
	cmd := exec.CommandContext(ctx, runner, args...)
	return newCmdExecutor(cmd, spec), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	Register(TypeJobScript, newJobScript)
}
