package core

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"
	"pkt.systems/viu/schema"
)

// Viewer is the render and event loop for a single document on a single terminal.
type Viewer struct {
	adapter *Adapter
	term    Terminal
	events  EventSource
	scroll  Scroll
	log     pslog.Logger
}

// NewViewer constructs a Viewer. A nil logger uses the logger on the Run context.
func NewViewer(adapter *Adapter, term Terminal, events EventSource, logger pslog.Logger) *Viewer {
	return &Viewer{
		adapter: adapter,
		term:    term,
		events:  events,
		log:     logger,
	}
}

// Run paints, waits for an event, applies it and repeats until Quit. Context
// cancellation and a closed event channel end the loop like Quit does.
func (v *Viewer) Run(ctx context.Context) error {
	log := v.log
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	width := -1
	for {
		cols, rows, err := v.term.Size()
		if err != nil {
			return fmt.Errorf("%w: %v", schema.ErrTerminalSize, err)
		}
		view, err := v.adapter.View(cols)
		if err != nil {
			return err
		}
		if v.scroll.Offset > len(view.Lines) {
			v.scroll.Offset = len(view.Lines)
		}
		if cols != width {
			log.Debug("viewer layout", "cols", cols, "rows", rows, "lines", len(view.Lines))
			width = cols
		}
		frame := BuildFrame(view.Lines, v.scroll.Offset, cols, rows)
		v.scroll.ReachedEnd = frame.ReachedEnd
		if err := v.term.Paint(frame.Text); err != nil {
			return fmt.Errorf("paint: %w", err)
		}

		event, err := v.events.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, schema.ErrBusClosed) {
				log.Debug("viewer stopped", "reason", err.Error())
				return nil
			}
			return err
		}
		log.Trace("viewer event", "event", event.Type.String(), "offset", v.scroll.Offset)
		switch event.Type {
		case schema.EventQuit:
			return nil
		case schema.EventScrollUp:
			v.scroll.Up()
		case schema.EventScrollDown:
			v.scroll.Down()
		case schema.EventResize:
			// Picked up by the size check at the top of the loop.
		}
	}
}

// Scroll returns the current scroll state.
func (v *Viewer) Scroll() Scroll {
	return v.scroll
}
