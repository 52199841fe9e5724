package core

import (
	"fmt"
	"strings"
)

// View is the formatted, highlighted document for one terminal width.
type View struct {
	Lines   []string
	Columns int
}

// Adapter runs the format and highlight pipeline and keeps the result for the
// last width it was asked for.
type Adapter struct {
	document    string
	formatter   Formatter
	highlighter Highlighter

	view   View
	cached bool
	calls  int
}

// NewAdapter returns an Adapter over an immutable document.
func NewAdapter(document string, formatter Formatter, highlighter Highlighter) *Adapter {
	return &Adapter{
		document:    document,
		formatter:   formatter,
		highlighter: highlighter,
	}
}

// View returns the document laid out for cols columns. The pipeline only runs
// when cols differs from the width of the cached view.
func (a *Adapter) View(cols int) (View, error) {
	if a.cached && a.view.Columns == cols {
		return a.view, nil
	}
	a.calls++
	text, err := a.formatter.Format(a.document, cols)
	if err != nil {
		return View{}, fmt.Errorf("format document: %w", err)
	}
	styled, err := a.highlighter.Highlight(text)
	if err != nil {
		return View{}, fmt.Errorf("highlight document: %w", err)
	}
	a.view = View{Lines: SplitLines(styled), Columns: cols}
	a.cached = true
	return a.view, nil
}

// Calls reports how many times the pipeline has run.
func (a *Adapter) Calls() int {
	return a.calls
}

// SplitLines drops one trailing newline and splits on the rest. Empty text has no lines.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
