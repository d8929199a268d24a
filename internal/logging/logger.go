package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the name of the JSON log inside Options.Dir.
const LogFileName = "debug.log"

// Options configures New.
type Options struct {
	// Dir receives debug.log. Empty disables the file sink.
	Dir string
	// Level is one of ValidLevels; unrecognized values mean INFO.
	Level string
	// Rotation bounds the size of debug.log.
	Rotation RotationConfig
	// Stderr adds a text sink on standard error.
	Stderr bool
	// StderrWriter overrides os.Stderr for the text sink.
	StderrWriter io.Writer
}

// Logger provides structured logging with persistent attributes.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

// New creates a Logger from opts. With neither a directory nor stderr
// enabled the logger discards everything.
func New(opts Options) (*Logger, error) {
	level := parseLevel(opts.Level)
	var handlers []slog.Handler
	var closer io.Closer

	if opts.Dir != "" {
		rw, err := NewRotatingWriter(filepath.Join(opts.Dir, LogFileName), opts.Rotation)
		if err != nil {
			return nil, err
		}
		closer = rw
		handlers = append(handlers, slog.NewJSONHandler(rw, &slog.HandlerOptions{Level: level}))
	}

	if opts.Stderr {
		w := opts.StderrWriter
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}

	if len(handlers) == 0 {
		return NopLogger(), nil
	}

	return &Logger{
		logger: slog.New(slogmulti.Fanout(handlers...)),
		closer: closer,
	}, nil
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLesson returns a child logger tagging every entry with the lesson name.
func (l *Logger) WithLesson(name string) *Logger {
	return l.With("lesson", name)
}

// WithSession returns a child logger tagging every entry with an API session id.
func (l *Logger) WithSession(id string) *Logger {
	return l.With("session_id", id)
}

// With returns a child logger with arbitrary key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// Slog exposes the underlying slog.Logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Close flushes and closes the log file. Child loggers and loggers without a
// file sink have nothing to close.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// NopLogger returns a Logger that discards all log output.
func NopLogger() *Logger {
	return &Logger{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// ParseLevel normalizes level to one of the level constants.
// Returns LevelInfo if the level string is not recognized.
func ParseLevel(level string) string {
	switch up := strings.ToUpper(level); up {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return up
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
