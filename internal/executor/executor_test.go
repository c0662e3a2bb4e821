package executor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutor(t *testing.T) {
	t.Run("UnknownType", func(t *testing.T) {
		_, err := NewExecutor(context.Background(), Spec{Type: "docker"})
		require.ErrorIs(t, err, ErrUnknownExecutorType)
	})

	t.Run("RegisteredTypes", func(t *testing.T) {
		assert.True(t, IsValidType(TypeJobScript))
		assert.True(t, IsValidType(TypeProcess))
		assert.False(t, IsValidType("ssh"))
	})
}

func TestProcessExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		exec, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "sh",
			Args:          []string{"-c", "echo hello"},
			WorkspaceRoot: t.TempDir(),
		})
		require.NoError(t, err)

		var stdout, stderr bytes.Buffer
		exec.SetStdout(&stdout)
		exec.SetStderr(&stderr)

		require.NoError(t, exec.Run(ctx))
		assert.Equal(t, "hello\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("NonZeroExit", func(t *testing.T) {
		exec, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "sh",
			Args:          []string{"-c", "echo oops >&2; exit 3"},
			WorkspaceRoot: t.TempDir(),
		})
		require.NoError(t, err)

		var stderr bytes.Buffer
		exec.SetStderr(&stderr)

		err = exec.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit status 3")
		assert.Equal(t, "oops\n", stderr.String())
	})

	t.Run("ParameterFlagsSortedByKey", func(t *testing.T) {
		exec, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "echo",
			WorkspaceRoot: t.TempDir(),
			Parameters:    map[string]string{"month": "September", "year": "2025"},
		})
		require.NoError(t, err)

		var stdout bytes.Buffer
		exec.SetStdout(&stdout)

		require.NoError(t, exec.Run(ctx))
		assert.Equal(t, "--month September --year 2025\n", stdout.String())
	})

	t.Run("WorkingDirPinnedToWorkspaceRoot", func(t *testing.T) {
		workspace, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)

		exec, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "sh",
			Args:          []string{"-c", "pwd"},
			WorkspaceRoot: workspace,
		})
		require.NoError(t, err)

		var stdout bytes.Buffer
		exec.SetStdout(&stdout)

		require.NoError(t, exec.Run(ctx))
		assert.Equal(t, workspace+"\n", stdout.String())
	})

	t.Run("MissingWorkspaceRoot", func(t *testing.T) {
		_, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "sh",
			WorkspaceRoot: filepath.Join(t.TempDir(), "nope"),
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "workspace root")
	})

	t.Run("EmptyEntryPoint", func(t *testing.T) {
		_, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			WorkspaceRoot: t.TempDir(),
		})
		require.Error(t, err)
	})

	t.Run("KillBeforeStart", func(t *testing.T) {
		exec, err := NewExecutor(ctx, Spec{
			Type:          TypeProcess,
			EntryPoint:    "sh",
			Args:          []string{"-c", "true"},
			WorkspaceRoot: t.TempDir(),
		})
		require.NoError(t, err)
		require.NoError(t, exec.Kill(os.Interrupt))
	})
}

func TestProcessExecutorProgress(t *testing.T) {
	ctx := context.Background()

	type checkpoint struct {
		current, total int
	}
	var got []checkpoint

	exec, err := NewExecutor(ctx, Spec{
		Type:          TypeProcess,
		EntryPoint:    "sh",
		Args:          []string{"-c", "true"},
		WorkspaceRoot: t.TempDir(),
		Progress: func(current, total int, _ string) {
			got = append(got, checkpoint{current, total})
		},
	})
	require.NoError(t, err)
	require.NoError(t, exec.Run(ctx))

	require.NotEmpty(t, got)
	last := -1
	for _, c := range got {
		assert.GreaterOrEqual(t, c.current, last, "progress must be non-decreasing")
		assert.LessOrEqual(t, c.current, c.total)
		last = c.current
	}
	assert.Equal(t, got[len(got)-1].current, got[len(got)-1].total)
}

func TestJobScriptExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingNotebook", func(t *testing.T) {
		_, err := NewExecutor(ctx, Spec{
			Type:          TypeJobScript,
			EntryPoint:    "notebooks/nope.ipynb",
			WorkspaceRoot: t.TempDir(),
			OutputTarget:  filepath.Join(t.TempDir(), "out.ipynb"),
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "notebook not found")
	})

	t.Run("EmptyOutputTarget", func(t *testing.T) {
		workspace := t.TempDir()
		notebook := filepath.Join(workspace, "report.ipynb")
		require.NoError(t, os.WriteFile(notebook, []byte("{}"), 0o644))

		_, err := NewExecutor(ctx, Spec{
			Type:          TypeJobScript,
			EntryPoint:    "report.ipynb",
			WorkspaceRoot: workspace,
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "output target")
	})

	t.Run("CreatesOutputDir", func(t *testing.T) {
		workspace := t.TempDir()
		notebook := filepath.Join(workspace, "report.ipynb")
		require.NoError(t, os.WriteFile(notebook, []byte("{}"), 0o644))

		outputTarget := filepath.Join(workspace, "executed", "20250915", "report.ipynb")
		_, err := NewExecutor(ctx, Spec{
			Type:          TypeJobScript,
			EntryPoint:    "report.ipynb",
			WorkspaceRoot: workspace,
			OutputTarget:  outputTarget,
		})
		require.NoError(t, err)
		assert.DirExists(t, filepath.Dir(outputTarget))
	})
}
