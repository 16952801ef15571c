package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1 // a command failed
	ExitUsage = 2 // bad flags or args
)

// ExitCoder is an error with an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError is a user-facing mistake in flags or args. Run prints it with help and exits with ExitUsage.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return ExitUsage }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// exitCodeFor returns the exit code for err: its ExitCode if it has one, else plainCode.
func exitCodeFor(err error, plainCode int) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return plainCode
}
