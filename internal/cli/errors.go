package cli

import (
	"errors"
	"strings"

	"github.com/jaa/terminal-timer/internal/exitcode"
)

type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error { return e.Err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &StatusError{Code: code, Err: err}
}

var usageErrorMarkers = [...]string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
}

func mapExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var coded *StatusError
	if errors.As(err, &coded) {
		return coded.Code
	}
	for _, marker := range usageErrorMarkers {
		if strings.Contains(err.Error(), marker) {
			return exitcode.InvalidUsage
		}
	}
	return exitcode.RuntimeFailure
}
