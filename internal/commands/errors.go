package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// failureKind selects the go-errors category and text code reported to
// callers of a checklist command.
type failureKind int

const (
	execFailed failureKind = iota
	invalidMessage
	cancelled
	timedOut
)

// wrap tags err unless an inner layer already did.
func (k failureKind) wrap(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch k {
	case invalidMessage:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
			WithTextCode("COMMAND_VALIDATION_FAILED")
	case cancelled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode("COMMAND_CONTEXT_CANCELED")
	case timedOut:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode("COMMAND_CONTEXT_TIMEOUT")
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode("COMMAND_EXECUTION_FAILED")
	}
}

func contextKind(err error) (failureKind, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return timedOut, true
	case errors.Is(err, context.Canceled):
		return cancelled, true
	}
	return execFailed, false
}
