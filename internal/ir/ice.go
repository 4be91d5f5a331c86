package ir

import "fmt"

// InternalError marks a violated compiler invariant: something the front end
// and earlier passes are supposed to guarantee before this pass ever runs.
// These are unrecoverable; callers are expected to let them propagate and
// abort compilation with a clearly-labeled diagnostic rather than attempt to
// continue. internal/diagnostics formats these for the CLI.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal compiler error: " + e.Msg }

func ice(format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
