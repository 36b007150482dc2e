package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"unicode/utf8"
)

var (
	errNegativeLength   = errors.New("length must be non-negative")
	errEmptyAlphabet    = errors.New("alphabet must not be empty")
	errNonASCIIAlphabet = errors.New("alphabet must be ASCII")
)

// RandomBytes returns length bytes drawn uniformly from alphabet using
// crypto/rand. The caller owns the result and should Wipe it when done.
func RandomBytes(length int, alphabet string) ([]byte, error) {
	if length < 0 {
		return nil, errNegativeLength
	}
	if len(alphabet) == 0 {
		return nil, errEmptyAlphabet
	}
	for index := 0; index < len(alphabet); index++ {
		if alphabet[index] >= utf8.RuneSelf {
			return nil, errNonASCIIAlphabet
		}
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			Wipe(value)
			return nil, err
		}
		value[index] = alphabet[position.Int64()]
	}
	return value, nil
}

// RandomString is RandomBytes for callers that need a string, such as a
// temporary password shown to the user. The intermediate buffer is wiped.
func RandomString(length int, alphabet string) (string, error) {
	value, err := RandomBytes(length, alphabet)
	if err != nil {
		return "", err
	}
	defer Wipe(value)

	return string(value), nil
}
