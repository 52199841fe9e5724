package schema

import "errors"

var (
	// ErrFileNotFound indicates the file to view does not exist.
	ErrFileNotFound = errors.New("file does not exist")
	// ErrNotTerminal indicates stdin or stdout is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrTerminalSize indicates the terminal dimensions could not be read.
	ErrTerminalSize = errors.New("terminal size unavailable")
	// ErrFormat indicates the formatter rejected the document.
	ErrFormat = errors.New("format failed")
	// ErrHighlight indicates the highlighter rejected the document.
	ErrHighlight = errors.New("highlight failed")
	// ErrUnknownStyle indicates the highlight style is not registered.
	ErrUnknownStyle = errors.New("unknown highlight style")
	// ErrUnknownLanguage indicates no lexer matches the requested language.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidColorProfile indicates an unsupported color profile name.
	ErrInvalidColorProfile = errors.New("invalid color profile")
	// ErrInvalidLogLevel indicates an unsupported log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrPanic indicates a session goroutine panicked and was recovered.
	ErrPanic = errors.New("recovered panic")
	// ErrBusClosed indicates the event channel was closed before an event arrived.
	ErrBusClosed = errors.New("event bus closed")
)
