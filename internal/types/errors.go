package types

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation decisions: only KindConfig
// errors abort the pipeline, every other kind is logged and the
// offending item skipped.
type Kind string

const (
	// KindIo covers file and process access failures.
	KindIo Kind = "io"
	// KindSecurity covers ownership/permission denials from the
	// script-rule security gate.
	KindSecurity Kind = "security"
	// KindConfig covers unresolvable shell, missing common ancestor,
	// and unknown native rule names.
	KindConfig Kind = "config"
	// KindScript covers import/attribute/invocation/extraction
	// failures from script rules.
	KindScript Kind = "script"
)

// Error is a classified error. It wraps an underlying cause when one
// exists so callers can use errors.Is/errors.As on the chain.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates a classified error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError creates a classified error wrapping an underlying cause.
func WrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of err, or "" if err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsConfig reports whether err is a configuration-class error, the only
// class that aborts the pipeline.
func IsConfig(err error) bool { return KindOf(err) == KindConfig }
