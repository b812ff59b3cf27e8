// Package notify is the fire-and-forget status channel for user-facing
// messages. The engine returns structured failures; turning them into text
// and delivering them is this layer's job.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier delivers a status message. Delivery is best-effort: callers
// never wait on or inspect the outcome.
type Notifier interface {
	Notify(msg string)
}

// Writer notifies onto an io.Writer, one message per line.
type Writer struct {
	Out    io.Writer
	Prefix string
}

// NewStderr returns a Notifier writing to standard error.
func NewStderr(prefix string) *Writer {
	return &Writer{Out: os.Stderr, Prefix: prefix}
}

func (w *Writer) Notify(msg string) {
	fmt.Fprintln(w.Out, w.Prefix+msg)
}

// Discard drops every message. Useful in tests.
type Discard struct{}

func (Discard) Notify(string) {}
