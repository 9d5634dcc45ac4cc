package spinner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewAppliesLabelStyleAndInterval(t *testing.T) {
	s := New(&bytes.Buffer{}, "thinking",
		WithInterval(5*time.Millisecond),
		WithStyle(func(s string) string { return "<" + s + ">" }),
	)
	assert.Equal(t, "<thinking> ", s.sp.Prefix)
	assert.Equal(t, 5*time.Millisecond, s.sp.Delay)
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, "thinking", WithInterval(0), nil)
	assert.Equal(t, "thinking ", s.sp.Prefix)
	assert.Equal(t, DefaultInterval, s.sp.Delay)
	assert.False(t, s.Running())
}

func TestNonTerminalWriterStaysQuiet(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	s := New(&buf, "thinking", WithInterval(time.Millisecond))
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	assert.False(t, s.Running())
	assert.Empty(t, buf.String())
}

func TestRegularFileIsNotAnimated(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	s := New(f, "thinking", WithInterval(time.Millisecond))
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(&bytes.Buffer{}, "thinking", WithInterval(time.Millisecond))
	s.Stop()
	for i := 0; i < 3; i++ {
		s.Start()
		s.Start()
		s.Stop()
		s.Stop()
	}
	assert.False(t, s.Running())
}
