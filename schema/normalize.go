package schema

import "strings"

// ColorProfile names how many colors the highlighter may emit.
type ColorProfile string

const (
	// ColorAuto detects the profile from the output and environment.
	ColorAuto ColorProfile = "auto"
	// ColorTrueColor emits 24-bit colors.
	ColorTrueColor ColorProfile = "truecolor"
	// ColorANSI256 emits the 256-color palette.
	ColorANSI256 ColorProfile = "ansi256"
	// ColorANSI emits the 16 base colors.
	ColorANSI ColorProfile = "ansi"
	// ColorASCII emits no color at all.
	ColorASCII ColorProfile = "ascii"
)

// NormalizeColorProfile returns the canonical profile name. Empty means auto.
func NormalizeColorProfile(value string) (ColorProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	switch normalized {
	case "", "auto":
		return ColorAuto, nil
	case "truecolor", "true-color", "24bit", "16m":
		return ColorTrueColor, nil
	case "ansi256", "256", "256color":
		return ColorANSI256, nil
	case "ansi", "16":
		return ColorANSI, nil
	case "ascii", "none", "no-color":
		return ColorASCII, nil
	default:
		return "", ErrInvalidColorProfile
	}
}

// LogLevel is a canonical log level name.
type LogLevel string

// Supported log levels.
const (
	LogTrace LogLevel = "trace"
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogError LogLevel = "error"
)

// NormalizeLogLevel returns the canonical level name. Empty means info.
func NormalizeLogLevel(value string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return LogInfo, nil
	case "trace":
		return LogTrace, nil
	case "debug":
		return LogDebug, nil
	case "error", "err":
		return LogError, nil
	default:
		return "", ErrInvalidLogLevel
	}
}
