// Package viu is a scrollable, syntax highlighted terminal viewer for source files.
package viu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime/debug"
	"time"

	"github.com/muesli/cancelreader"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"pkt.systems/pslog"
	"pkt.systems/viu/core"
	"pkt.systems/viu/internal/eventbus"
	"pkt.systems/viu/internal/format"
	"pkt.systems/viu/internal/highlight"
	"pkt.systems/viu/internal/keys"
	"pkt.systems/viu/schema"
	"pkt.systems/viu/tty"
)

// readerJoinTimeout bounds how long Run waits for the input goroutine after the viewer exits.
const readerJoinTimeout = 100 * time.Millisecond

// Options configures the formatting and highlighting of a document.
type Options struct {
	// Filename is used for language detection only.
	Filename     string
	Language     string
	Style        string
	ColorProfile schema.ColorProfile
	Gofmt        bool
	TabWidth     int
	Wrap         bool
}

// Document is a loaded file ready to be laid out for any terminal width.
type Document struct {
	Text        string
	Formatter   *format.Formatter
	Highlighter *highlight.Highlighter
}

// ReadFile loads path. A missing file is reported as schema.ErrFileNotFound.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", schema.ErrFileNotFound, path)
		}
		return "", err
	}
	return string(data), nil
}

// NewDocument resolves the highlighter and formatter for text. Output and
// environ drive color profile detection when the profile is auto.
func NewDocument(text string, opts Options, output io.Writer, environ []string) (*Document, error) {
	h, err := highlight.New(highlight.Options{
		Language: opts.Language,
		Filename: opts.Filename,
		Style:    opts.Style,
		Profile:  opts.ColorProfile,
		Output:   output,
		Environ:  environ,
	}, text)
	if err != nil {
		return nil, err
	}
	f := format.New(format.Options{
		Language: h.Language(),
		Gofmt:    opts.Gofmt,
		TabWidth: opts.TabWidth,
		Wrap:     opts.Wrap,
	})
	return &Document{Text: text, Formatter: f, Highlighter: h}, nil
}

// Adapter returns a fresh width-memoized pipeline over the document. Each
// terminal gets its own adapter.
func (d *Document) Adapter() *core.Adapter {
	return core.NewAdapter(d.Text, d.Formatter, d.Highlighter)
}

// Preflight lays the document out for the current width of out so that
// formatting errors surface before the terminal is touched. It does nothing
// when out is not a terminal; Run reports that.
func Preflight(adapter *core.Adapter, out *os.File) error {
	cols, _, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return nil
	}
	_, err = adapter.View(cols)
	return err
}

// Run views the adapter's document on the process terminal until the user
// quits or ctx is cancelled. The terminal is restored before Run returns,
// including when the viewer fails or panics.
func Run(ctx context.Context, adapter *core.Adapter, in, out *os.File) (err error) {
	log := pslog.Ctx(ctx)
	sess, err := tty.Open(ctx, in, out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	reader, err := cancelreader.NewReader(in)
	if err != nil {
		return fmt.Errorf("input reader: %w", err)
	}
	defer reader.Close()

	bus := eventbus.New(log)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		readErr := readKeys(reader, bus, log)
		switch {
		case errors.Is(readErr, cancelreader.ErrCanceled):
			return
		case errors.Is(readErr, io.EOF):
			log.Debug("input closed")
		default:
			log.Warn("input read failed", "err", readErr)
		}
		bus.Publish(schema.Quit)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tty.NotifyResize(gctx, bus)
	})
	g.Go(func() (err error) {
		defer cancel()
		defer recoverPanic(log, "viewer", &err)
		return core.NewViewer(adapter, sess, bus, log).Run(gctx)
	})
	err = g.Wait()
	bus.Close()

	if reader.Cancel() {
		select {
		case <-readerDone:
		case <-time.After(readerJoinTimeout):
			log.Debug("input reader still blocked")
		}
	}
	return err
}

// readKeys runs the key decoder, turning a panic into an error so the caller
// still publishes Quit.
func readKeys(r io.Reader, bus *eventbus.Bus, log pslog.Logger) (err error) {
	defer recoverPanic(log, "input reader", &err)
	return keys.Read(r, bus)
}

// recoverPanic must be deferred directly. A panic on a session goroutine would
// otherwise end the process without the deferred terminal restore in Run.
func recoverPanic(log pslog.Logger, name string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	log.Error("recovered panic", "goroutine", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
	*err = fmt.Errorf("%w in %s: %v", schema.ErrPanic, name, r)
}
