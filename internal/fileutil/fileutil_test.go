package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(tmp, "nope.txt")))
}

func TestIsDir(t *testing.T) {
	tmp := t.TempDir()
	assert.True(t, IsDir(tmp))
	assert.False(t, IsDir(filepath.Join(tmp, "nope")))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, IsDir(dir))

	// Idempotent.
	require.NoError(t, EnsureDir(dir))
}

func TestOpenOrCreateFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "log.txt")

	f, err := OpenOrCreateFile(file)
	require.NoError(t, err)
	_, err = f.WriteString("one\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenOrCreateFile(file)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestResolvePath(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("Absolute", func(t *testing.T) {
		got, err := ResolvePath("/tmp/x")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/x", got)
	})

	t.Run("EnvExpansion", func(t *testing.T) {
		t.Setenv("REPORTCTL_TEST_DIR", "/tmp/expanded")
		got, err := ResolvePath("$REPORTCTL_TEST_DIR/sub")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/expanded/sub", got)
	})

	t.Run("Home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := ResolvePath("~/reports")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "reports"), got)
	})
}
