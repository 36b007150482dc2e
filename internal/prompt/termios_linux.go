//go:build linux

package prompt

import "golang.org/x/sys/unix"

const (
	termiosReadRequest  = unix.TCGETS
	termiosWriteRequest = unix.TCSETS
)
