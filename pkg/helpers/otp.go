package helpers

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// OTP helpers

// KeyOTPCooldown is the Redis key guarding the per-phone issuance cooldown
func KeyOTPCooldown(phone string) string {
	return "otp:cooldown:" + phone
}

// KeyOTPAttempts is the Redis key counting failed verifications for a phone
func KeyOTPAttempts(phone string) string {
	return "otp:attempts:" + phone
}

// KeyOTPLock is the Redis key marking a locked-out phone
func KeyOTPLock(phone string) string {
	return "otp:lock:" + phone
}

// GenOTPCode generates a secure random numeric OTP code as a zero-padded string
func GenOTPCode(length int) (string, error) {
	const digits = "0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b), nil
}

// HashOTPCode hashes the plaintext code for storage; only the hash is persisted
func HashOTPCode(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	return string(h), nil
}

// CompareOTPCode compares a stored hash with a submitted code without
// short-circuiting on the first differing byte
func CompareOTPCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
