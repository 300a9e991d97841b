// Package ports defines the Logger interface for logging abstraction.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-frame and per-batch details.
	LevelDebug LogLevel = iota
	// LevelInfo is for job progress (stage transitions, counts).
	LevelInfo
	// LevelWarn is for isolated failures that do not stop the job,
	// such as a pair that could not be compared or a frame that could not be deleted.
	LevelWarn
	// LevelError is for job-fatal failures.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
// Unknown values fall back to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet", "silent":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations.
// The msg parameter is a printf-style message key that implementations may translate.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags messages with the component name.
	WithComponent(component string) Logger
}
