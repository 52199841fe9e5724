// Package format reflows source text to a terminal width before highlighting.
package format

import (
	"fmt"
	gofmt "go/format"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"pkt.systems/viu/schema"
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 4

// Options controls how documents are reformatted.
type Options struct {
	// Language is the highlighter's language name; "Go" enables gofmt.
	Language string
	Gofmt    bool
	TabWidth int
	// Wrap soft-wraps at word boundaries and hard-wraps anything still too wide.
	Wrap bool
}

// Formatter implements the width-dependent formatting step.
type Formatter struct {
	opts Options
}

// New returns a Formatter for the given options.
func New(opts Options) *Formatter {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Formatter{opts: opts}
}

// Format normalizes line endings, runs gofmt on Go sources, expands tabs and
// wraps every line to width columns. A width below 1 disables wrapping.
func (f *Formatter) Format(raw string, width int) (string, error) {
	text := normalizeNewlines(raw)
	if f.opts.Gofmt && isGo(f.opts.Language) {
		out, err := gofmt.Source([]byte(text))
		if err != nil {
			return "", fmt.Errorf("%w: gofmt: %v", schema.ErrFormat, err)
		}
		text = string(out)
	}
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", f.opts.TabWidth))
	if !f.opts.Wrap || width < 1 {
		return text, nil
	}
	text = wordwrap.String(text, width)
	w := wrap.NewWriter(width)
	w.TabWidth = f.opts.TabWidth
	w.PreserveSpace = true
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("%w: wrap: %v", schema.ErrFormat, err)
	}
	return w.String(), nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func isGo(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), "go")
}
