package calc

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	require.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLoggerCapturesEvaluation(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, _ = Evaluate("=A1+", nil)
	require.Contains(t, buf.String(), "malformed expression")

	buf.Reset()
	_, _ = Evaluate("=SUMM(1)", nil)
	require.Contains(t, buf.String(), "unknown function")
	require.Contains(t, buf.String(), "suggestion=SUM")
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
