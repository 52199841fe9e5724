// Package highlight colors source text for the terminal with chroma.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"

	"pkt.systems/viu/schema"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Options selects the lexer, style and color depth.
type Options struct {
	// Language overrides detection when set (a chroma name or alias).
	Language string
	// Filename is matched against lexer file patterns.
	Filename string
	Style    string
	Profile  schema.ColorProfile
	// Output and Environ feed color profile detection when Profile is auto.
	// With neither set, auto means truecolor.
	Output  io.Writer
	Environ []string
}

// Highlighter implements the highlight step with a fixed lexer and style.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
	fmtName   string
}

// New resolves the lexer, style and formatter. sample is the document text
// used for content analysis when the filename is not conclusive.
func New(opts Options, sample string) (*Highlighter, error) {
	lexer, err := DetectLexer(opts.Language, opts.Filename, sample)
	if err != nil {
		return nil, err
	}
	style, err := Style(opts.Style)
	if err != nil {
		return nil, err
	}
	name := FormatterName(resolveProfile(opts))
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatters.Get(name),
		fmtName:   name,
	}, nil
}

// Highlight returns text with terminal color sequences. Line structure is preserved.
func (h *Highlighter) Highlight(text string) (string, error) {
	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("%w: tokenise: %v", schema.ErrHighlight, err)
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/2)
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", schema.ErrHighlight, err)
	}
	return b.String(), nil
}

// Language returns the resolved lexer name.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// StyleName returns the resolved style name.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Formatter returns the chroma formatter name in use.
func (h *Highlighter) Formatter() string {
	return h.fmtName
}

// DetectLexer picks a lexer by explicit language, then filename, then content.
// Plain text is used when nothing matches; an unknown explicit language is an error.
func DetectLexer(language, filename, sample string) (chroma.Lexer, error) {
	if name := strings.TrimSpace(language); name != "" {
		lexer := lexers.Get(name)
		if lexer == nil {
			return nil, fmt.Errorf("%w: %q", schema.ErrUnknownLanguage, name)
		}
		return lexer, nil
	}
	if filename != "" {
		if lexer := lexers.Match(filename); lexer != nil {
			return lexer, nil
		}
	}
	if sample != "" {
		if lexer := lexers.Analyse(sample); lexer != nil {
			return lexer, nil
		}
	}
	return lexers.Fallback, nil
}

// Style returns the named chroma style. Empty selects DefaultStyle.
func Style(name string) (*chroma.Style, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultStyle
	}
	if style, ok := styles.Registry[name]; ok {
		return style, nil
	}
	if style, ok := styles.Registry[strings.ToLower(name)]; ok {
		return style, nil
	}
	return nil, fmt.Errorf("%w: %q", schema.ErrUnknownStyle, name)
}

// StyleNames lists every registered style, sorted.
func StyleNames() []string {
	return styles.Names()
}

// FormatterName maps a color profile to a chroma terminal formatter.
func FormatterName(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

func resolveProfile(opts Options) colorprofile.Profile {
	switch opts.Profile {
	case schema.ColorTrueColor:
		return colorprofile.TrueColor
	case schema.ColorANSI256:
		return colorprofile.ANSI256
	case schema.ColorANSI:
		return colorprofile.ANSI
	case schema.ColorASCII:
		return colorprofile.ASCII
	}
	switch {
	case opts.Output != nil:
		return colorprofile.Detect(opts.Output, opts.Environ)
	case opts.Environ != nil:
		return colorprofile.Env(opts.Environ)
	default:
		return colorprofile.TrueColor
	}
}
