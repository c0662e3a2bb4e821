package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		params, err := parseParams(nil)
		require.NoError(t, err)
		assert.Nil(t, params)
	})

	t.Run("Valid", func(t *testing.T) {
		params, err := parseParams([]string{"year=2025", "month=September"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"year": "2025", "month": "September"}, params)
	})

	t.Run("ValueWithEquals", func(t *testing.T) {
		params, err := parseParams([]string{"filter=a=b"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"filter": "a=b"}, params)
	})

	t.Run("MissingValueSeparator", func(t *testing.T) {
		_, err := parseParams([]string{"year"})
		require.Error(t, err)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := parseParams([]string{"=2025"})
		require.Error(t, err)
	})
}
