package iftracer

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a minimal printf-style logging interface for the SDK.
// It's compatible with the standard library log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// StructuredLogger provides structured, leveled logging for the SDK.
// This is the preferred logging interface and is compatible with slog and
// similar structured logging libraries via the provided adapters.
type StructuredLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// defaultLogger wraps the standard library logger.
type defaultLogger struct {
	logger *log.Logger
}

func (l *defaultLogger) Printf(format string, v ...any) {
	l.logger.Printf(format, v...)
}

// NopLogger is a logger that discards all log messages.
// Use this to disable logging entirely.
type NopLogger struct{}

// Printf implements Logger.Printf.
func (NopLogger) Printf(format string, v ...any) {}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

// Ensure NopLogger implements both interfaces.
var (
	_ Logger           = NopLogger{}
	_ StructuredLogger = NopLogger{}
)

// ============================================================================
// Slog Adapter
// ============================================================================

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
//
// Example:
//
//	evaluator, _ := iftracer.NewEvaluator(apiKey, username,
//	    iftracer.WithStructuredLogger(iftracer.NewSlogAdapter(slog.Default())),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// With returns a new SlogAdapter with the given attributes added.
func (a *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: a.logger.With(args...)}
}

var _ StructuredLogger = (*SlogAdapter)(nil)

// ============================================================================
// Zerolog Adapter
// ============================================================================

// ZerologAdapter adapts a zerolog.Logger to the StructuredLogger interface.
//
// Example:
//
//	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
//	evaluator, _ := iftracer.NewEvaluator(apiKey, username,
//	    iftracer.WithStructuredLogger(iftracer.NewZerologAdapter(zl)),
//	)
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter wrapping the given logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *ZerologAdapter) Debug(msg string, args ...any) {
	a.event(a.logger.Debug(), msg, args)
}

// Info implements StructuredLogger.Info.
func (a *ZerologAdapter) Info(msg string, args ...any) {
	a.event(a.logger.Info(), msg, args)
}

// Warn implements StructuredLogger.Warn.
func (a *ZerologAdapter) Warn(msg string, args ...any) {
	a.event(a.logger.Warn(), msg, args)
}

// Error implements StructuredLogger.Error.
func (a *ZerologAdapter) Error(msg string, args ...any) {
	a.event(a.logger.Error(), msg, args)
}

// event attaches alternating key/value args as zerolog fields.
func (a *ZerologAdapter) event(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}

var _ StructuredLogger = (*ZerologAdapter)(nil)

// ============================================================================
// Printf Wrapper
// ============================================================================

// printfLoggerWrapper wraps a printf-style logger to implement StructuredLogger.
type printfLoggerWrapper struct {
	logger Logger
}

// WrapPrintfLogger wraps a printf-style Logger (like *log.Logger) to
// implement StructuredLogger. All messages are logged at the same level with
// formatted key-value pairs appended.
func WrapPrintfLogger(l Logger) StructuredLogger {
	return &printfLoggerWrapper{logger: l}
}

func (w *printfLoggerWrapper) Debug(msg string, args ...any) {
	w.logger.Printf("[DEBUG] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Info(msg string, args ...any) {
	w.logger.Printf("[INFO] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Warn(msg string, args ...any) {
	w.logger.Printf("[WARN] " + msg + formatArgs(args))
}

func (w *printfLoggerWrapper) Error(msg string, args ...any) {
	w.logger.Printf("[ERROR] " + msg + formatArgs(args))
}

var _ StructuredLogger = (*printfLoggerWrapper)(nil)

// formatArgs formats structured logging arguments as a string.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	result := " |"
	for i := 0; i < len(args)-1; i += 2 {
		result += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return result
}
