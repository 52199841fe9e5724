package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"pkt.systems/viu/internal/eventbus"
	"pkt.systems/viu/schema"
)

type countingFormatter struct {
	calls  int
	widths []int
	err    error
}

func (f *countingFormatter) Format(raw string, width int) (string, error) {
	f.calls++
	f.widths = append(f.widths, width)
	if f.err != nil {
		return "", f.err
	}
	return raw, nil
}

type passthroughHighlighter struct{}

func (passthroughHighlighter) Highlight(text string) (string, error) { return text, nil }

// fakeTerminal changes size when it sees a Resize in the script.
type fakeTerminal struct {
	cols, rows int
	frames     []string
	sizeErr    error
}

func (t *fakeTerminal) Size() (int, int, error) {
	return t.cols, t.rows, t.sizeErr
}

func (t *fakeTerminal) Paint(frame string) error {
	t.frames = append(t.frames, frame)
	return nil
}

// scriptedEvents replays events and runs a hook before delivering each one.
type scriptedEvents struct {
	events []schema.Event
	before func(schema.Event)
}

func (s *scriptedEvents) Next(ctx context.Context) (schema.Event, error) {
	if len(s.events) == 0 {
		return schema.Event{}, schema.ErrBusClosed
	}
	ev := s.events[0]
	s.events = s.events[1:]
	if s.before != nil {
		s.before(ev)
	}
	return ev, nil
}

func newTestViewer(doc string, term *fakeTerminal, events EventSource) (*Viewer, *Adapter, *countingFormatter) {
	f := &countingFormatter{}
	adapter := NewAdapter(doc, f, passthroughHighlighter{})
	return NewViewer(adapter, term, events, nil), adapter, f
}

func TestViewerQuitEndsLoopAfterOnePaint(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 5}
	v, _, _ := newTestViewer("a\nb\nc\n", term, &scriptedEvents{events: []schema.Event{schema.Quit}})
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(term.frames) != 1 {
		t.Fatalf("expected one paint, got %d", len(term.frames))
	}
	if !strings.Contains(term.frames[0], "~") || !strings.Contains(term.frames[0], "(END)") {
		t.Fatalf("expected filler and end banner, got %q", term.frames[0])
	}
}

func TestViewerScrollUpAtTopIsNoop(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 2}
	events := &scriptedEvents{events: []schema.Event{schema.ScrollUp, schema.ScrollUp, schema.Quit}}
	v, _, _ := newTestViewer("a\nb\nc", term, events)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Scroll().Offset != 0 {
		t.Fatalf("expected offset 0, got %d", v.Scroll().Offset)
	}
}

func TestViewerScrollDownStopsAtEnd(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 2}
	script := []schema.Event{schema.ScrollDown, schema.ScrollDown, schema.ScrollDown, schema.ScrollDown, schema.Quit}
	v, _, _ := newTestViewer("a\nb\nc", term, &scriptedEvents{events: script})
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := v.Scroll().Offset; got != 2 {
		t.Fatalf("expected offset to stop at 2, got %d", got)
	}
	last := term.frames[len(term.frames)-1]
	if want := "\x1b[1;1Hc\x1b[2;1H\x1b[7m(END)\x1b[0m\x1b[2;6H"; last != want {
		t.Fatalf("expected last line with banner %q, got %q", want, last)
	}
	if !strings.HasSuffix(term.frames[0], ":") {
		t.Fatalf("expected more marker on first frame, got %q", term.frames[0])
	}
	if want := "\x1b[1;1Hb\x1b[2;1H:"; term.frames[1] != want {
		t.Fatalf("expected second frame %q, got %q", want, term.frames[1])
	}
}

func TestViewerSameWidthDoesNotReformat(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 3}
	script := []schema.Event{schema.ScrollDown, schema.Resize, schema.ScrollUp, schema.Quit}
	v, adapter, f := newTestViewer("a\nb\nc\nd", term, &scriptedEvents{events: script})
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.calls != 1 || adapter.Calls() != 1 {
		t.Fatalf("expected a single format call, got %d", f.calls)
	}
	if len(term.frames) != 4 {
		t.Fatalf("expected a paint per iteration, got %d", len(term.frames))
	}
}

func TestViewerResizeReformatsOnceBeforeNextPaint(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 5}
	events := &scriptedEvents{events: []schema.Event{schema.Resize, schema.Quit}}
	events.before = func(ev schema.Event) {
		if ev.Type == schema.EventResize {
			term.cols, term.rows = 40, 3
		}
	}
	v, _, f := newTestViewer("a\nb\nc", term, events)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("expected two format calls, got %d", f.calls)
	}
	if f.widths[0] != 80 || f.widths[1] != 40 {
		t.Fatalf("unexpected widths %v", f.widths)
	}
	if len(term.frames) != 2 {
		t.Fatalf("expected two paints, got %d", len(term.frames))
	}
	if !strings.HasSuffix(term.frames[1], ":") {
		t.Fatalf("expected resized frame to show more marker, got %q", term.frames[1])
	}
}

func TestViewerResizeKeepsOffset(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 2}
	events := &scriptedEvents{events: []schema.Event{schema.ScrollDown, schema.Resize, schema.Quit}}
	events.before = func(ev schema.Event) {
		if ev.Type == schema.EventResize {
			term.cols = 60
		}
	}
	v, _, _ := newTestViewer("a\nb\nc", term, events)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Scroll().Offset != 1 {
		t.Fatalf("expected offset preserved across resize, got %d", v.Scroll().Offset)
	}
}

// halvingFormatter keeps the first half of the lines once width reaches wide.
type halvingFormatter struct{ wide int }

func (f halvingFormatter) Format(raw string, width int) (string, error) {
	if width < f.wide {
		return raw, nil
	}
	lines := strings.Split(raw, "\n")
	return strings.Join(lines[:len(lines)/2], "\n"), nil
}

func TestViewerClampsOffsetWhenLayoutShrinks(t *testing.T) {
	term := &fakeTerminal{cols: 20, rows: 2}
	script := []schema.Event{schema.ScrollDown, schema.ScrollDown, schema.ScrollDown, schema.ScrollDown, schema.ScrollDown, schema.Resize, schema.ScrollUp, schema.Quit}
	events := &scriptedEvents{events: script}
	events.before = func(ev schema.Event) {
		if ev.Type == schema.EventResize {
			term.cols = 80
		}
	}
	adapter := NewAdapter("a\nb\nc\nd\ne\nf", halvingFormatter{wide: 80}, passthroughHighlighter{})
	v := NewViewer(adapter, term, events, nil)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	// Offset 5 on six lines, then three lines after the resize: clamped to 3,
	// so a single ScrollUp shows the last line again.
	if got := v.Scroll().Offset; got != 2 {
		t.Fatalf("expected offset 2 after clamp and one scroll up, got %d", got)
	}
	last := term.frames[len(term.frames)-1]
	if want := "\x1b[1;1Hc\x1b[2;1H\x1b[7m(END)\x1b[0m\x1b[2;6H"; last != want {
		t.Fatalf("expected %q, got %q", want, last)
	}
}

func TestViewerFormatErrorIsReturned(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 5}
	f := &countingFormatter{err: fmt.Errorf("%w: boom", schema.ErrFormat)}
	v := NewViewer(NewAdapter("x", f, passthroughHighlighter{}), term, &scriptedEvents{}, nil)
	if err := v.Run(context.Background()); !errors.Is(err, schema.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if len(term.frames) != 0 {
		t.Fatalf("expected no paint after format failure")
	}
}

func TestViewerSizeErrorIsReturned(t *testing.T) {
	term := &fakeTerminal{sizeErr: errors.New("no tty")}
	v, _, _ := newTestViewer("x", term, &scriptedEvents{})
	if err := v.Run(context.Background()); !errors.Is(err, schema.ErrTerminalSize) {
		t.Fatalf("expected ErrTerminalSize, got %v", err)
	}
}

func TestViewerStopsOnContextCancel(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 5}
	bus := eventbus.New(nil)
	v, _, _ := newTestViewer("a", term, bus)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("viewer did not stop after cancel")
	}
}

func TestViewerDrainsBusInOrder(t *testing.T) {
	term := &fakeTerminal{cols: 80, rows: 2}
	bus := eventbus.New(nil)
	bus.Publish(schema.ScrollDown)
	bus.Publish(schema.ScrollDown)
	bus.Publish(schema.ScrollUp)
	bus.Publish(schema.Quit)
	bus.Publish(schema.ScrollDown)
	v, _, _ := newTestViewer("a\nb\nc\nd", term, bus)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Scroll().Offset != 1 {
		t.Fatalf("expected offset 1, got %d", v.Scroll().Offset)
	}
	if bus.Len() != 1 {
		t.Fatalf("expected events after quit to stay queued, got %d", bus.Len())
	}
}
