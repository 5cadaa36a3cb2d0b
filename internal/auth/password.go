package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 10 keeps hashing around ~100ms on commodity hardware.
const bcryptCost = 10

// HashPassword produces a salted bcrypt hash of the plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash. It never returns
// an error to the caller; any mismatch or malformed hash is simply false.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
