// Package logger is a small leveled logger on top of the standard log
// package. Levels are off, normal (info, warn, error) and verbose (adds
// debug). A Logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls how much is written.
type Level int

const (
	LevelOff Level = iota
	LevelNormal
	LevelVerbose
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps "off", "normal" or "verbose" (case-insensitive) to a Level.
// An empty string means LevelNormal.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return LevelOff, nil
	case "", "normal":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// Logger writes prefixed lines at or below its level.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger writing to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	flags := log.Ldate | log.Ltime
	return &Logger{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(LevelOff, io.Discard)
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current level.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args []any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= min {
		_ = dst.Output(3, fmt.Sprintf(format, args...))
	}
}

// Debug logs only in verbose mode.
func (l *Logger) Debug(format string, args ...any) { l.output(LevelVerbose, l.debug, format, args) }

// Info logs at normal level.
func (l *Logger) Info(format string, args ...any) { l.output(LevelNormal, l.info, format, args) }

// Warn logs at normal level.
func (l *Logger) Warn(format string, args ...any) { l.output(LevelNormal, l.warn, format, args) }

// Error logs at normal level.
func (l *Logger) Error(format string, args ...any) { l.output(LevelNormal, l.errLog, format, args) }
