package prompt

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// Console is a terminal device whose local echo can be switched off.
//
// MaskEcho snapshots the current settings, disables echo and returns a
// function that puts the snapshot back. Only one read may be in flight per
// device; callers serialise access themselves.
type Console interface {
	io.Reader
	IsTerminal() bool
	MaskEcho() (restore func() error, err error)
}

var errNoOutput = errors.New("terminal has no output stream")

// TTY is a Console backed by operating system files.
type TTY struct {
	in    *os.File
	out   *os.File
	owned bool
}

// NewTTY wraps already open files, typically os.Stdin and os.Stderr. out may
// be nil when nothing needs to be written to the terminal.
func NewTTY(in *os.File, out *os.File) *TTY {
	return &TTY{in: in, out: out}
}

// OpenTTY opens the controlling terminal of the process, independent of
// where stdin and stdout point.
func OpenTTY() (*TTY, error) {
	return openControllingTTY()
}

func (tty *TTY) Read(p []byte) (int, error) {
	return tty.in.Read(p)
}

func (tty *TTY) Write(p []byte) (int, error) {
	if tty.out == nil {
		return 0, errNoOutput
	}
	return tty.out.Write(p)
}

func (tty *TTY) IsTerminal() bool {
	if tty == nil || tty.in == nil {
		return false
	}
	return term.IsTerminal(int(tty.in.Fd()))
}

// Close closes files opened by OpenTTY. Files passed to NewTTY are left
// open.
func (tty *TTY) Close() error {
	if !tty.owned {
		return nil
	}
	err := tty.in.Close()
	if tty.out != nil && tty.out != tty.in {
		err = errors.Join(err, tty.out.Close())
	}
	return err
}
