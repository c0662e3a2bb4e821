package stringutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		assert.Equal(t, "", FormatTime(time.Time{}))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		now := time.Date(2025, 9, 15, 10, 30, 0, 0, time.Local)
		parsed, err := ParseTime(FormatTime(now))
		require.NoError(t, err)
		assert.True(t, now.Equal(parsed))
	})

	t.Run("ParseEmpty", func(t *testing.T) {
		parsed, err := ParseTime("")
		require.NoError(t, err)
		assert.True(t, parsed.IsZero())
	})
}

func TestTruncString(t *testing.T) {
	assert.Equal(t, "abc", TruncString("abcdef", 3))
	assert.Equal(t, "abc", TruncString("abc", 10))
}

func TestLastLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"Empty", "", 3, ""},
		{"Fewer", "a\nb", 3, "a\nb"},
		{"Exact", "a\nb\nc", 3, "a\nb\nc"},
		{"Truncated", "a\nb\nc\nd", 2, "c\nd"},
		{"TrailingNewline", "a\nb\nc\n", 2, "b\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastLines(tt.input, tt.n))
		})
	}
}
