package cli

import (
	"errors"
	"fmt"
)

// usageError marks bad input: unknown flags, wrong arguments or an invalid
// draft. It maps to exit status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "item not found: " + e.id }

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}
