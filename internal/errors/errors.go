// Package errors defines application errors and exit code mapping.
package errors

import "github.com/pkg/errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = errors.New("usage error")
	// ErrChecksumMismatch indicates at least one checked file did not verify.
	ErrChecksumMismatch = errors.New("checksum verification failed")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		return 2
	}

	return 1
}

// Usage wraps a message so that it maps to the usage exit code.
func Usage(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUsage, format, args...)
}
