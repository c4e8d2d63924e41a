package cmd

import (
	"errors"
	"fmt"
)

// Exit statuses
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitFailure = 2
)

// ExitError is an error that carries the process exit status.
// A nil Err means the status alone is the result and nothing is reported.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExitError) Unwrap() error {
	return e.Err
}

// fail wraps err as a fatal configuration or runtime failure
func fail(err error) *ExitError {
	return &ExitError{Code: ExitFailure, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit
// status. Errors that are not an ExitError (flag parsing, unknown flags)
// are failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitMatch
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Reportable returns the error that should be shown to the user, or nil
// when err only carries an exit status.
func Reportable(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Err
	}
	return err
}
