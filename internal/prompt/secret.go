package prompt

import (
	"fmt"
	"io"

	"github.com/terraincognita07/hushline/internal/security"
)

const (
	initialSecretCapacity = 64
	redacted              = "[REDACTED]"
)

// wipe is the erase primitive used for every secret buffer in this package.
var wipe = security.Wipe

// Secret owns the bytes of one entered secret. It is always handled through
// a pointer so the bytes are never copied implicitly; Wipe must be called
// once the secret is no longer needed.
type Secret struct {
	buf []byte
}

// NewSecret wraps b without copying it. The caller hands over ownership and
// must not keep other references to b.
func NewSecret(b []byte) *Secret {
	return &Secret{buf: b}
}

func newSecretBuffer() *Secret {
	return &Secret{buf: make([]byte, 0, initialSecretCapacity)}
}

// Bytes returns a read-only view of the secret. The view is zeroed by Wipe
// and must not be retained past it.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.buf
}

func (s *Secret) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// Wipe zeroes the whole backing array and drops it. Calling Wipe more than
// once, or on a nil Secret, is a no-op.
func (s *Secret) Wipe() {
	if s == nil || s.buf == nil {
		return
	}
	wipe(s.buf[:cap(s.buf)])
	s.buf = nil
}

// A dereferenced Secret value is redacted too.
func (s Secret) String() string {
	return redacted
}

// Format keeps the secret out of every fmt verb, including %x and %#v.
func (s Secret) Format(state fmt.State, _ rune) {
	_, _ = io.WriteString(state, redacted)
}

// appendByte grows the buffer by hand so the old backing array can be wiped
// instead of being left behind for the garbage collector.
func (s *Secret) appendByte(c byte) {
	if len(s.buf) == cap(s.buf) {
		grown := make([]byte, len(s.buf), 2*cap(s.buf)+initialSecretCapacity)
		copy(grown, s.buf)
		wipe(s.buf[:cap(s.buf)])
		s.buf = grown
	}
	s.buf = append(s.buf, c)
}

func (s *Secret) discard() {
	wipe(s.buf)
	s.buf = s.buf[:0]
}

func (s *Secret) trimSuffix(c byte) {
	last := len(s.buf) - 1
	if last < 0 || s.buf[last] != c {
		return
	}
	s.buf[last] = 0
	s.buf = s.buf[:last]
}
