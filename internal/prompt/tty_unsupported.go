//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package prompt

func openControllingTTY() (*TTY, error) {
	return nil, ErrUnsupportedDevice
}

func (tty *TTY) MaskEcho() (func() error, error) {
	return nil, ErrUnsupportedDevice
}

func isInterrupted(error) bool {
	return false
}
