// Package clipboard moves checklists in and out of the application through
// the system clipboard, the terminal or plain files.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnsupported is returned when a clipboard cannot perform an operation.
var ErrUnsupported = errors.New("clipboard: operation not supported")

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, s string) error
}

// System is the operating system clipboard.
type System struct{}

// ReadText returns the clipboard contents.
func (System) ReadText(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return withContext(ctx, func() (string, error) {
		return clipboard.ReadAll()
	})
}

// WriteText replaces the clipboard contents.
func (System) WriteText(ctx context.Context, s string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	_, err := withContext(ctx, func() (string, error) {
		return "", clipboard.WriteAll(s)
	})
	return err
}

// withContext runs fn, giving up when ctx is done. The helper process spawned
// by the clipboard library is left to finish on its own in that case.
func withContext(ctx context.Context, fn func() (string, error)) (string, error) {
	type result struct {
		s   string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := fn()
		ch <- result{s, err}
	}()

	select {
	case r := <-ch:
		return r.s, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for clipboard: %w", ctx.Err())
	}
}

// OSC52Fallback copies text by asking the terminal emulator to do it through
// an OSC 52 escape sequence. It cannot read.
type OSC52Fallback struct {
	// Out is the terminal. Defaults to os.Stderr.
	Out io.Writer
}

// ReadText always fails; terminals do not reliably answer OSC 52 queries.
func (OSC52Fallback) ReadText(context.Context) (string, error) {
	return "", ErrUnsupported
}

// WriteText emits the copy sequence, wrapped for tmux or screen when needed.
func (f OSC52Fallback) WriteText(ctx context.Context, s string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := f.Out
	if out == nil {
		out = os.Stderr
	}

	seq := osc52.New(s)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}
