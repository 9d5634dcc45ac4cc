package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesLevelAndObject(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Warn("load conversations failed", map[string]any{"path": "conversations.json"})

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "load conversations failed")
	assert.Contains(t, out, "conversations.json")
}

func TestDebugRequiresVerbose(t *testing.T) {
	var quiet bytes.Buffer
	New(&quiet, false).Debug("hidden", nil)
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	New(&loud, true).Debug("shown", nil)
	assert.Contains(t, loud.String(), "shown")
}

func TestHelpersAreNilSafe(t *testing.T) {
	require.NotPanics(t, func() {
		Info(nil, "x", nil)
		Warn(nil, "x", nil)
		Error(nil, "x", nil)
		Debug(true, nil, "x", nil)
		Debugf(true, nil, "x=%d", 1)
		Sync(nil)
	})
}

func TestDebugHelperHonoursEnabledFlag(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	Debugf(false, l, "turn=%d", 1)
	assert.Empty(t, buf.String())

	Debugf(true, l, "turn=%d", 2)
	assert.Contains(t, buf.String(), "turn=2")
}

func TestNewWithNilWriterIsNop(t *testing.T) {
	_, ok := New(nil, true).(NopLogger)
	assert.True(t, ok)
}
