package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdataDir = filepath.Join("testdata")

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		reg := Load(context.Background(), filepath.Join(testdataDir, "registry.yaml"))
		require.Equal(t, 4, reg.Len())

		report, ok := reg.Get("monthly_consolidation")
		require.True(t, ok)
		assert.Equal(t, "Monthly Consolidation", report.Name)
		assert.Equal(t, ExecutorTypeJobScript, report.ExecutorType)
		assert.Equal(t, []string{"trial_balance_mvp"}, report.Dependencies)
		assert.Equal(t, map[string]string{"year": "auto", "month": "auto"}, report.DefaultParameters)
	})

	t.Run("MissingFileYieldsEmptyCatalog", func(t *testing.T) {
		reg := Load(context.Background(), filepath.Join(testdataDir, "not_existing.yaml"))
		require.Equal(t, 0, reg.Len())
	})

	t.Run("MalformedFileYieldsEmptyCatalog", func(t *testing.T) {
		reg := Load(context.Background(), filepath.Join(testdataDir, "err_parse.yaml"))
		require.Equal(t, 0, reg.Len())
	})
}

func TestLoadYAML(t *testing.T) {
	t.Run("InvalidKey", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(testdataDir, "err_decode.yaml"))
		require.NoError(t, err)

		_, err = LoadYAML(context.Background(), data)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid keys")
	})

	t.Run("DuplicateID", func(t *testing.T) {
		data := []byte(`
reports:
  - id: a
    entryPoint: a.ipynb
  - id: a
    entryPoint: b.ipynb
`)
		_, err := LoadYAML(context.Background(), data)
		require.ErrorIs(t, err, ErrDuplicateReportID)
	})

	t.Run("EmptyID", func(t *testing.T) {
		data := []byte(`
reports:
  - entryPoint: a.ipynb
`)
		_, err := LoadYAML(context.Background(), data)
		require.ErrorIs(t, err, ErrEmptyReportID)
	})

	t.Run("EmptyEntryPoint", func(t *testing.T) {
		data := []byte(`
reports:
  - id: a
`)
		_, err := LoadYAML(context.Background(), data)
		require.ErrorIs(t, err, ErrEmptyEntryPoint)
	})

	t.Run("InvalidExecutorType", func(t *testing.T) {
		data := []byte(`
reports:
  - id: a
    entryPoint: a.ipynb
    executor: docker
`)
		_, err := LoadYAML(context.Background(), data)
		require.ErrorIs(t, err, ErrInvalidExecutorType)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		data := []byte(`
reports:
  - id: a
    entryPoint: a.ipynb
    status: retired
`)
		_, err := LoadYAML(context.Background(), data)
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Defaults", func(t *testing.T) {
		data := []byte(`
reports:
  - id: a
    entryPoint: a.ipynb
`)
		reg, err := LoadYAML(context.Background(), data)
		require.NoError(t, err)

		report, ok := reg.Get("a")
		require.True(t, ok)
		assert.Equal(t, "a", report.Name)
		assert.Equal(t, ExecutorTypeJobScript, report.ExecutorType)
		assert.Equal(t, StatusActive, report.Status)
	})
}
