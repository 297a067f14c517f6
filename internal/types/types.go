// Package types defines common type-safe values used across the codebase.
package types

// LogLevel represents a logging verbosity level as configured by the user.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Valid returns true if the LogLevel is a known valid value.
// The empty string is valid and means "use the default".
func (l LogLevel) Valid() bool {
	switch l {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	}
	return false
}

// Command is the failed shell invocation under correction. It is
// constructed once before the pipeline runs and is read-only: every
// rule receives the same text, stdout, and stderr verbatim.
type Command struct {
	text   string
	stdout string
	stderr string
}

// NewCommand creates a Command from the invocation text and its
// captured output streams.
func NewCommand(text, stdout, stderr string) Command {
	return Command{text: text, stdout: stdout, stderr: stderr}
}

// Text returns the command line as the user typed it (after alias
// expansion, when the pipeline performed one).
func (c Command) Text() string { return c.text }

// Stdout returns the captured standard output of the failed run.
func (c Command) Stdout() string { return c.stdout }

// Stderr returns the captured standard error of the failed run.
func (c Command) Stderr() string { return c.stderr }
