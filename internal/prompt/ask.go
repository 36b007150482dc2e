package prompt

import (
	"fmt"
	"io"
	"os"
)

const (
	// DefaultAttempts is how many secrets Ask reads before giving up.
	DefaultAttempts = 3

	DefaultRetryNotice = "Sorry, try again."
)

// Validator checks a secret and returns a payload on success. Returning an
// error for which IsRetryable is true makes Ask prompt again; any other
// error ends the loop.
//
// The secret is wiped as soon as the validator returns, so anything it needs
// later has to be derived from it before returning.
type Validator[T any] func(secret []byte) (T, error)

// Options tunes Ask. The zero value uses the defaults.
type Options struct {
	Attempts    int
	RetryNotice string

	// Output receives the prompt and retry notices. Defaults to the console
	// itself when it is writable, otherwise os.Stderr.
	Output io.Writer
}

func (opts Options) attempts() int {
	if opts.Attempts <= 0 {
		return DefaultAttempts
	}
	return opts.Attempts
}

func (opts Options) retryNotice() string {
	if opts.RetryNotice == "" {
		return DefaultRetryNotice
	}
	return opts.RetryNotice
}

func (opts Options) output(console Console) io.Writer {
	if opts.Output != nil {
		return opts.Output
	}
	if writer, ok := console.(io.Writer); ok {
		return writer
	}
	return os.Stderr
}

// AskPassword prompts on the controlling terminal and validates the answer,
// asking again up to DefaultAttempts times while the validator reports a
// retryable error.
func AskPassword[T any](prompt string, validate Validator[T]) (T, error) {
	tty, err := OpenTTY()
	if err != nil {
		var zero T
		return zero, err
	}
	defer tty.Close()

	return Ask(tty, prompt, validate, Options{})
}

// Ask prompts on console, reads a secret and hands it to validate. Reader
// and non-retryable validator errors are returned unchanged. When every
// attempt is rejected it returns ErrRetriesExhausted. Each secret is wiped
// before the next prompt and before Ask returns.
func Ask[T any](console Console, prompt string, validate Validator[T], opts Options) (T, error) {
	var zero T
	if validate == nil {
		return zero, errNilValidator
	}
	if console == nil || !console.IsTerminal() {
		return zero, ErrUnsupportedDevice
	}

	out := opts.output(console)
	attempts := opts.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if _, err := fmt.Fprintln(out, opts.retryNotice()); err != nil {
				return zero, err
			}
		}
		if _, err := io.WriteString(out, prompt); err != nil {
			return zero, err
		}

		secret, err := ReadPasswordFrom(console)
		if err != nil {
			return zero, err
		}

		payload, err := validateSecret(secret, validate)
		if err == nil {
			return payload, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
	}

	return zero, ErrRetriesExhausted
}

// validateSecret takes ownership of secret. The deferred wipe also runs when
// validate panics.
func validateSecret[T any](secret *Secret, validate Validator[T]) (T, error) {
	defer secret.Wipe()
	return validate(secret.Bytes())
}
