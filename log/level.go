package log

import "strings"

// Level defines the semantic severity of a log message. Levels are ordered
// from least to most severe, which makes threshold filtering a simple
// comparison: a message is emitted when its level is at least the configured
// minimum.
//
// The core stays integration-agnostic: simulation executives that use numeric
// severity conventions are supported through ParseLevelInt, and any mapping to
// an external framework's publish levels belongs in an adapter, not here.
type Level int8

// Severity constants ordered by increasing criticality.
const (
	// DebugLevel carries diagnostic detail, often high-volume. Usually
	// disabled in production runs.
	DebugLevel Level = iota + 1

	// InfoLevel carries routine operational messages of low concern.
	InfoLevel

	// WarnLevel flags unusual but recoverable conditions.
	WarnLevel

	// ErrorLevel flags conditions that may affect correctness or require
	// attention.
	ErrorLevel

	// FatalLevel flags unrecoverable conditions; the run should terminate.
	FatalLevel
)

// String returns the canonical uppercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// AtLeast reports whether l meets an inclusive severity threshold.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold
}

// ParseLevel converts a string to a Level with case-insensitive ASCII
// matching. "WARNING" is accepted as an alias for WARN. The second return
// value is false for unrecognized inputs, leaving the caller free to apply
// its own default.
func ParseLevel(levelStr string) (Level, bool) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DebugLevel, true
	case "INFO":
		return InfoLevel, true
	case "WARN", "WARNING":
		return WarnLevel, true
	case "ERROR":
		return ErrorLevel, true
	case "FATAL":
		return FatalLevel, true
	}
	return InfoLevel, false
}

// ParseLevelInt converts legacy numeric severity values used by simulation
// frameworks into semantic levels:
//
//	0 (normal) -> Info
//	1 (info)   -> Info
//	2 (warn)   -> Warn
//	3 (error)  -> Error
//	10 (debug) -> Debug
//
// Any other value is rejected. This is a configuration convenience only; the
// core severity model remains semantic.
func ParseLevelInt(value int) (Level, bool) {
	switch value {
	case 0, 1:
		return InfoLevel, true
	case 2:
		return WarnLevel, true
	case 3:
		return ErrorLevel, true
	case 10:
		return DebugLevel, true
	default:
		return InfoLevel, false
	}
}
