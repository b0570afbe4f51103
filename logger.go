package fluxcrud

import (
	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed information, typically of interest only when diagnosing problems.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for informational messages that highlight the progress of the application.
	LogLevelInfo
	// LogLevelWarn is for potentially harmful situations that might require attention.
	LogLevelWarn
	// LogLevelError is for error events that might still allow the application to continue running.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the logging interface accepted by the loader and batcher
// packages. Implementations can route messages to any destination.
// The Logger is optional - if none is provided, no logging occurs.
type Logger interface {
	// Log writes a log message at the specified level.
	// The message is formatted using fmt.Sprintf if args are provided.
	Log(level LogLevel, format string, args ...any)

	// Debug logs a debug-level message.
	Debug(format string, args ...any)

	// Info logs an info-level message.
	Info(format string, args ...any)

	// Warn logs a warning-level message.
	Warn(format string, args ...any)

	// Error logs an error-level message.
	Error(format string, args ...any)
}

// NoOpLogger is a logger that discards all log messages. It is the default
// logger when none is specified.
type NoOpLogger struct{}

// Log implements the Logger interface.
func (n *NoOpLogger) Log(level LogLevel, format string, args ...any) {}

// Debug implements the Logger interface.
func (n *NoOpLogger) Debug(format string, args ...any) {}

// Info implements the Logger interface.
func (n *NoOpLogger) Info(format string, args ...any) {}

// Warn implements the Logger interface.
func (n *NoOpLogger) Warn(format string, args ...any) {}

// Error implements the Logger interface.
func (n *NoOpLogger) Error(format string, args ...any) {}

// ZerologLogger adapts a zerolog.Logger to the Logger interface so the
// primitives can participate in an application's structured logging.
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	l := loader.New(fetch, loader.WithLogger(fluxcrud.NewZerologLogger(zl)))
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger that writes through the given
// zerolog.Logger. Level filtering is left to the zerolog configuration.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Log implements the Logger interface.
func (z *ZerologLogger) Log(level LogLevel, format string, args ...any) {
	var ev *zerolog.Event
	switch level {
	case LogLevelDebug:
		ev = z.zl.Debug()
	case LogLevelInfo:
		ev = z.zl.Info()
	case LogLevelWarn:
		ev = z.zl.Warn()
	case LogLevelError:
		ev = z.zl.Error()
	default:
		ev = z.zl.Log()
	}
	ev.Msgf(format, args...)
}

// Debug implements the Logger interface.
func (z *ZerologLogger) Debug(format string, args ...any) {
	z.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (z *ZerologLogger) Info(format string, args ...any) {
	z.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (z *ZerologLogger) Warn(format string, args ...any) {
	z.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (z *ZerologLogger) Error(format string, args ...any) {
	z.Log(LogLevelError, format, args...)
}
