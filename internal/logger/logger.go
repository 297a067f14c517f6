// Package logger provides leveled, prefixed logging to stderr.
//
// Diagnostics never go to stdout: stdout carries exactly one thing,
// the corrected command that the shell hook evals.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level represents log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	globalLevel   = LevelWarn
	globalColored = detectColor()
	globalMu      sync.RWMutex
)

var (
	styleDebug  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")) // blue
	styleInfo   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A")) // green
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68")) // amber
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E")) // red
	stylePrefix = lipgloss.NewStyle().Faint(true)
)

// detectColor checks whether stderr supports color output. NO_COLOR
// and dumb terminals disable it.
func detectColor() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.NewOutput(os.Stderr).Profile != termenv.Ascii
}

// Logger provides leveled logging with a component prefix
type Logger struct {
	prefix string
}

// New creates a new logger with the given prefix
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

// SetGlobalLevel sets the global log level
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLevel = level
}

// ParseLevel converts a string to a Level, returning an error if unrecognized.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
}

// SetGlobalLevelFromString sets log level from string, ignoring
// unrecognized values.
func SetGlobalLevelFromString(level string) {
	if l, err := ParseLevel(level); err == nil {
		SetGlobalLevel(l)
	}
}

// SetColored enables or disables colored output
func SetColored(colored bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalColored = colored
}

func (l *Logger) log(level Level, levelStr string, style lipgloss.Style, format string, args ...any) {
	globalMu.RLock()
	if level < globalLevel {
		globalMu.RUnlock()
		return
	}
	colored := globalColored
	globalMu.RUnlock()

	msg := fmt.Sprintf(format, args...)

	if colored {
		fmt.Fprintf(os.Stderr, "%s %s %s\n",
			style.Render(levelStr+":"), stylePrefix.Render("["+l.prefix+"]"), msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s: [%s] %s\n", levelStr, l.prefix, msg)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, "DEBUG", styleDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, "INFO", styleInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, "WARN", styleWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, "ERROR", styleError, format, args...)
}
