package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	cause := errors.New("bad pattern")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitMatch},
		{"no match", &ExitError{Code: ExitNoMatch}, ExitNoMatch},
		{"failure", fail(cause), ExitFailure},
		{"wrapped", fmt.Errorf("outer: %w", &ExitError{Code: ExitNoMatch}), ExitNoMatch},
		{"plain error", cause, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	cause := errors.New("bad pattern")

	if got := fail(cause).Error(); got != "bad pattern" {
		t.Errorf("Error() = %q, want %q", got, "bad pattern")
	}
	if got := (&ExitError{Code: 1}).Error(); got != "exit status 1" {
		t.Errorf("Error() = %q, want %q", got, "exit status 1")
	}
	if !errors.Is(fail(cause), cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestReportable(t *testing.T) {
	cause := errors.New("boom")

	if Reportable(&ExitError{Code: 1}) != nil {
		t.Error("status-only ExitError should not be reported")
	}
	if Reportable(fail(cause)) != cause {
		t.Error("Reportable should return the wrapped cause")
	}
	if Reportable(cause) != cause {
		t.Error("plain errors should be reported as is")
	}
}
