// internal/app/system/passwords/passwords.go

// Package passwords generates temporary passwords and wraps bcrypt
// hashing for the identity store.
package passwords

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Ambiguous characters (0/O, 1/l/I) are excluded because temporary
// passwords are relayed to new users out of band, often read aloud.
const tempAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TempLength is the number of random characters in a temporary
// password, before the marker suffix.
const TempLength = 16

// TempSuffix marks a password as temporary; the portal prompts for a
// change on first login.
const TempSuffix = "Temp!"

// NewTemporary returns a temporary password drawn from crypto/rand:
// TempLength random characters followed by TempSuffix.
func NewTemporary() (string, error) {
	buf := make([]byte, TempLength)
	max := big.NewInt(int64(len(tempAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempAlphabet[n.Int64()]
	}
	return string(buf) + TempSuffix, nil
}

// Hash returns the bcrypt hash of password at the default cost.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches the bcrypt hash.
func Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
