package security

import "runtime"

// clearBytes is called through a variable so the compiler cannot treat the
// writes below as dead stores and drop them.
var clearBytes = func(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Wipe overwrites b with zeroes. It is safe to call on nil or empty slices.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	clearBytes(b)
	runtime.KeepAlive(b)
}

