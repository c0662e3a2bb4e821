package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(WithQuiet(), WithWriter(&buf), WithFormat("json"))

	lg.Info("report executed", "report", "trial_balance_mvp")

	out := buf.String()
	require.Contains(t, out, "report executed")
	require.Contains(t, out, "trial_balance_mvp")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(WithQuiet(), WithWriter(&buf), WithFormat("json"))

	lg.With("report", "x").Info("started")
	assert.Contains(t, buf.String(), `"report"`)
}

func TestLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer

	lg := NewLogger(WithQuiet(), WithWriter(&buf))
	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	lg = NewLogger(WithQuiet(), WithWriter(&buf), WithDebug())
	lg.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestFromContext(t *testing.T) {
	t.Run("Fallback", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		lg := NewLogger(WithQuiet(), WithWriter(&buf), WithFormat("json"))

		ctx := WithLogger(context.Background(), lg)
		Info(ctx, "from context")
		assert.Contains(t, buf.String(), "from context")
	})

	t.Run("WithValues", func(t *testing.T) {
		var buf bytes.Buffer
		lg := NewLogger(WithQuiet(), WithWriter(&buf), WithFormat("json"))

		ctx := WithLogger(context.Background(), lg)
		ctx = WithValues(ctx, "run", "abc123")
		Info(ctx, "tagged")
		assert.Contains(t, buf.String(), "abc123")
	})
}
