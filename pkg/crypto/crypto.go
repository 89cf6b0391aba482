package crypto

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenBytes is the number of random bytes in a verification token.
// 32 bytes gives 256 bits of entropy, hex encoded to 64 characters.
const DefaultTokenBytes = 32

// HashPassword returns a bcrypt hash of the supplied password using the
// given cost. Costs below the bcrypt minimum fall back to the default cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares the hashed password with the plaintext candidate.
// The hash is never reversed; comparison happens inside bcrypt.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateToken returns a hex-encoded random token of the requested byte length.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		length = DefaultTokenBytes
	}
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
