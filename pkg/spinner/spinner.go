// Package spinner shows a one-line "thinking" indicator while a request is in
// flight. It is a thin wrapper over github.com/briandowns/spinner that keeps
// the label styling in lipgloss hands.
package spinner

import (
	"io"
	"os"
	"time"

	bspinner "github.com/briandowns/spinner"
)

// DefaultFrames rotate a half-filled circle.
var DefaultFrames = []string{"◐", "◓", "◑", "◒"}

// DefaultInterval is the repaint period.
const DefaultInterval = 200 * time.Millisecond

// Spinner shows "<label> <frame>" on the current line until stopped.
type Spinner struct {
	sp *bspinner.Spinner
}

type options struct {
	interval time.Duration
	style    func(string) string
}

// Option configures a Spinner.
type Option func(*options)

// WithInterval overrides the repaint period.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithStyle decorates the label, e.g. with a lipgloss style.
func WithStyle(style func(string) string) Option {
	return func(o *options) { o.style = style }
}

// New creates a stopped spinner writing to out. The spinner only animates
// when the target is a terminal; for any other writer Start is a no-op, so
// piped output and logs stay free of carriage returns.
func New(out io.Writer, label string, opts ...Option) *Spinner {
	o := options{interval: DefaultInterval}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if out == nil {
		out = io.Discard
	}

	target := bspinner.WithWriter(out)
	if f, ok := out.(*os.File); ok {
		target = bspinner.WithWriterFile(f)
	}
	sp := bspinner.New(DefaultFrames, o.interval, target)

	prefix := label
	if o.style != nil {
		prefix = o.style(label)
	}
	sp.Prefix = prefix + " "
	return &Spinner{sp: sp}
}

// Start begins repainting. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() { s.sp.Start() }

// Stop halts repainting and clears the line. Calling Stop on a stopped
// spinner is a no-op.
func (s *Spinner) Stop() { s.sp.Stop() }

// Running reports whether the spinner is active.
func (s *Spinner) Running() bool { return s.sp.Active() }
