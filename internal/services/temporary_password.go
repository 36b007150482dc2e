package services

import "github.com/terraincognita07/hushline/internal/security"

// Ambiguous characters (0/O, 1/l/I) are left out so the password can be read
// off a screen.
const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}
