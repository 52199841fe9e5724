// Package screen writes the escape sequences the viewer paints with.
package screen

import (
	"fmt"
	"io"
	"strings"
)

const (
	enterAlt = "\x1b[?1049h\x1b[H\x1b[2J"
	exitAlt  = "\x1b[?1049l\x1b[?25h"
	clear    = "\x1b[2J"
	// Home moves the cursor to row 1, column 1.
	Home = "\x1b[1;1H"
	// EndBanner is the inverse-video marker shown when the last line is visible.
	EndBanner = "\x1b[7m(END)\x1b[0m"
	// MoreMarker is shown on the last row while lines remain below the window.
	MoreMarker = ":"
	// Filler marks rows past the end of the document.
	Filler = "~"
)

// MoveTo returns the sequence placing the cursor at a 1-based row and column.
func MoveTo(row, col int) string {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

type flusher interface {
	Flush() error
}

// Screen paints frames onto a terminal output stream.
type Screen struct {
	out io.Writer
}

// New returns a Screen writing to out. If out has a Flush method it is called after every paint.
func New(out io.Writer) *Screen {
	return &Screen{out: out}
}

// EnterAltScreen switches to the alternate screen buffer and clears it.
func (s *Screen) EnterAltScreen() error {
	return s.write(enterAlt)
}

// ExitAltScreen restores the primary screen buffer and shows the cursor.
func (s *Screen) ExitAltScreen() error {
	return s.write(exitAlt)
}

// Paint clears the screen and writes frame in a single write.
func (s *Screen) Paint(frame string) error {
	var b strings.Builder
	b.Grow(len(clear) + len(frame))
	b.WriteString(clear)
	b.WriteString(frame)
	return s.write(b.String())
}

func (s *Screen) write(data string) error {
	if _, err := io.WriteString(s.out, data); err != nil {
		return err
	}
	if f, ok := s.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
