package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// ResetTokenBytes is the entropy of a password reset token (hex-encoded to twice this length)
	ResetTokenBytes = 32

	// VerificationCodeLength is the number of digits in a verification code
	VerificationCodeLength = 6
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
	randomInt                  = rand.Int
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRandomToken generates a random token of the given byte length,
// hex-encoded to twice that length.
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateResetToken generates an opaque password reset token
func GenerateResetToken() (string, error) {
	return GenerateRandomToken(ResetTokenBytes)
}

// GenerateVerificationCode generates a numeric verification code with
// each digit drawn independently and uniformly from 0-9.
func GenerateVerificationCode() (string, error) {
	digits := make([]byte, VerificationCodeLength)
	for i := range digits {
		n, err := randomInt(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashCode returns the hex-encoded SHA-256 digest of a verification code.
// Only the digest is persisted, never the code itself.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
