//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package prompt

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const controllingTTYPath = "/dev/tty"

func openControllingTTY() (*TTY, error) {
	file, err := os.OpenFile(controllingTTYPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnsupportedDevice, controllingTTYPath, err)
	}
	return &TTY{in: file, out: file, owned: true}, nil
}

// MaskEcho turns off ECHO but keeps ECHONL, so the newline still moves the
// cursor. Canonical mode is left alone; the driver keeps assembling lines.
func (tty *TTY) MaskEcho() (func() error, error) {
	if tty == nil || tty.in == nil {
		return nil, ErrUnsupportedDevice
	}

	fd := int(tty.in.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return nil, err
	}
	originalTermios := *termios
	maskedTermios := originalTermios
	maskedTermios.Lflag &^= unix.ECHO
	maskedTermios.Lflag |= unix.ECHONL

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &maskedTermios); err != nil {
		return nil, err
	}

	return func() error {
		return unix.IoctlSetTermios(fd, termiosWriteRequest, &originalTermios)
	}, nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}
