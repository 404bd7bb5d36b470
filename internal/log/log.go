// Package log is the leveled logger used by the command line tools.
// Library packages never log.
package log

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel resolves a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "NONE", "OFF":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("log: unknown level %q", s)
	}
}

// LevelFromString is ParseLevel falling back to INFO.
func LevelFromString(s string) Level {
	l, _ := ParseLevel(s)
	return l
}

// Logger writes "LEVEL: message" lines. It is safe for concurrent use.
type Logger struct {
	logger *log.Logger
	level  atomic.Int32
}

func New(out io.Writer, level Level) *Logger {
	l := &Logger{logger: log.New(out, "", 0)}
	l.SetLevel(level)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if l.Enabled(level) {
		l.logger.Printf(level.String()+": "+format, v...)
	}
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...any) { l.logf(LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...any) { l.logf(LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return level < LevelNone && level >= l.Level()
}

func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *Logger) Level() Level {
	return Level(l.level.Load())
}
