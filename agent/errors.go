package agent

import (
	"errors"
	"fmt"
)

// ErrUserDeclined marks a shell action whose confirmation was refused.
var ErrUserDeclined = errors.New("user declined")

// ActionArgumentError is a known action kind with a missing or malformed
// argument.
type ActionArgumentError struct {
	Kind   Kind
	Arg    string
	Reason string
}

func (e ActionArgumentError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("invalid %s action: args %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s action: args.%s %s", e.Kind, e.Arg, e.Reason)
}

func argError(kind Kind, arg, reason string) ActionArgumentError {
	return ActionArgumentError{Kind: kind, Arg: arg, Reason: reason}
}

// ExecutionError wraps an I/O, subprocess or network failure of one action.
// The message is the underlying error text, unchanged.
type ExecutionError struct {
	Kind Kind
	Err  error
}

func (e ExecutionError) Error() string {
	return e.Err.Error()
}

func (e ExecutionError) Unwrap() error {
	return e.Err
}
