//go:build windows

package prompt

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

func openControllingTTY() (*TTY, error) {
	in, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open CONIN$: %w", ErrUnsupportedDevice, err)
	}
	out, err := os.OpenFile("CONOUT$", os.O_WRONLY, 0)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w: open CONOUT$: %w", ErrUnsupportedDevice, err)
	}
	return &TTY{in: in, out: out, owned: true}, nil
}

func (tty *TTY) MaskEcho() (func() error, error) {
	if tty == nil || tty.in == nil {
		return nil, ErrUnsupportedDevice
	}

	handle := windows.Handle(tty.in.Fd())
	var originalMode uint32
	if err := windows.GetConsoleMode(handle, &originalMode); err != nil {
		return nil, err
	}

	maskedMode := originalMode &^ windows.ENABLE_ECHO_INPUT
	maskedMode |= windows.ENABLE_PROCESSED_INPUT | windows.ENABLE_LINE_INPUT
	if err := windows.SetConsoleMode(handle, maskedMode); err != nil {
		return nil, err
	}

	return func() error {
		return windows.SetConsoleMode(handle, originalMode)
	}, nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}
