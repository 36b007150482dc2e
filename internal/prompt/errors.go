package prompt

import (
	"errors"
	"io/fs"
)

var (
	// ErrUnsupportedDevice is returned when input is not an interactive
	// terminal, for example when stdin has been redirected from a file.
	ErrUnsupportedDevice = errors.New("unsupported device: input is not a terminal")

	// ErrTerminalState is returned when the terminal settings could not be
	// read, changed or restored.
	ErrTerminalState = errors.New("terminal state")

	// ErrWrongSecret is the error a Validator returns to ask for the secret
	// again.
	ErrWrongSecret = errors.New("wrong secret")

	// ErrRetriesExhausted is returned by Ask once every attempt was rejected
	// with a retryable error.
	ErrRetriesExhausted = errors.New("too many failed attempts")

	errNilValidator = errors.New("validator is required")
)

// IsRetryable reports whether a validator error asks the loop to prompt
// again. Both ErrWrongSecret and permission errors qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrWrongSecret) || errors.Is(err, fs.ErrPermission)
}
