package core

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"pkt.systems/viu/internal/screen"
)

// Frame is one full repaint of the terminal.
type Frame struct {
	Text string
	// Emitted is the number of document lines in the frame.
	Emitted int
	// Filled is the number of "~" rows below the last document line.
	Filled int
	// ReachedEnd reports whether the last document line is visible.
	ReachedEnd bool
}

// BuildFrame lays lines out from offset into a terminal of cols by rows.
// The final row is reserved for the ":" marker or the end banner, so at most
// rows-1 lines are shown. rows below 1 are treated as 1. Lines wider than
// cols are truncated so each occupies a single row.
func BuildFrame(lines []string, offset, cols, rows int) Frame {
	if rows < 1 {
		rows = 1
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	avail := rows - 1

	var b strings.Builder
	b.WriteString(screen.Home)
	emitted := 0
	for _, line := range lines[offset:] {
		if emitted == avail {
			b.WriteString(screen.MoreMarker)
			return Frame{Text: b.String(), Emitted: emitted}
		}
		if cols > 0 {
			line = ansi.Truncate(line, cols, "")
		}
		b.WriteString(line)
		b.WriteString(screen.MoveTo(emitted+2, 1))
		emitted++
	}
	filled := 0
	for row := emitted; row < avail; row++ {
		b.WriteString(screen.Filler)
		b.WriteString(screen.MoveTo(row+2, 1))
		filled++
	}
	b.WriteString(screen.EndBanner)
	b.WriteString(screen.MoveTo(rows, 6))
	return Frame{Text: b.String(), Emitted: emitted, Filled: filled, ReachedEnd: true}
}
