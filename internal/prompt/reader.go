package prompt

import (
	"errors"
	"fmt"
	"io"
)

const (
	lineKill                 = 0x15 // Ctrl-U
	maxConsecutiveEmptyReads = 100
)

// ReadPassword reads one line from the controlling terminal with echo
// disabled. The caller owns the returned Secret and must Wipe it.
func ReadPassword() (*Secret, error) {
	tty, err := OpenTTY()
	if err != nil {
		return nil, err
	}
	defer tty.Close()

	return ReadPasswordFrom(tty)
}

// ReadPasswordFrom reads one line from console with echo disabled. The
// terminal settings are restored before it returns, on every path. The line
// terminator is not part of the secret; end of input without a newline ends
// the line as well.
func ReadPasswordFrom(console Console) (secret *Secret, err error) {
	if console == nil || !console.IsTerminal() {
		return nil, ErrUnsupportedDevice
	}

	restore, err := console.MaskEcho()
	if err != nil {
		return nil, fmt.Errorf("%w: mask echo: %w", ErrTerminalState, err)
	}
	defer func() {
		if restoreErr := restore(); restoreErr != nil {
			secret.Wipe()
			secret = nil
			err = errors.Join(err, fmt.Errorf("%w: restore: %w", ErrTerminalState, restoreErr))
		}
	}()

	return readSecretLine(console)
}

// readSecretLine reads a byte at a time so that no read-ahead buffer ends up
// holding part of the secret.
func readSecretLine(reader io.Reader) (*Secret, error) {
	secret := newSecretBuffer()
	var scratch [1]byte
	complete := false
	defer func() {
		wipe(scratch[:])
		if !complete {
			secret.Wipe()
		}
	}()

	emptyReads := 0
readLoop:
	for {
		n, err := reader.Read(scratch[:])
		if n > 0 {
			emptyReads = 0
			switch scratch[0] {
			case '\n':
				break readLoop
			case lineKill:
				secret.discard()
			default:
				secret.appendByte(scratch[0])
			}
		}

		switch {
		case err == nil:
			if n == 0 {
				emptyReads++
				if emptyReads >= maxConsecutiveEmptyReads {
					return nil, io.ErrNoProgress
				}
			}
		case isInterrupted(err):
			continue
		case errors.Is(err, io.EOF):
			break readLoop
		default:
			return nil, err
		}
	}

	secret.trimSuffix('\r')
	complete = true
	return secret, nil
}
