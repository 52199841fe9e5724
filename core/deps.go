package core

import (
	"context"

	"pkt.systems/viu/schema"
)

// Formatter reflows the raw document for a terminal width.
type Formatter interface {
	Format(raw string, width int) (string, error)
}

// Highlighter adds terminal styling to formatted text without changing its line structure.
type Highlighter interface {
	Highlight(text string) (string, error)
}

// Terminal is the output side of the terminal driver.
type Terminal interface {
	// Size reports the current dimensions in columns and rows.
	Size() (cols, rows int, err error)
	// Paint clears the screen, writes frame and flushes.
	Paint(frame string) error
}

// EventSource is the consuming end of the event channel.
type EventSource interface {
	Next(ctx context.Context) (schema.Event, error)
}
