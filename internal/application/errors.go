package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// ErrInvalidPhone wraps the normalizer's rejection for the handler layer.
var ErrInvalidPhone = phone.ErrInvalid

var (
	ErrDeliveryFailed = errors.New("failed to send verification code")
	// ErrOtpNotFound covers never-issued, expired and already-used codes;
	// callers must not distinguish them in user-facing output.
	ErrOtpNotFound = errors.New("invalid or expired code")
	ErrOtpMismatch = errors.New("invalid code")
)

// RateLimitedError signals the per-phone issuance cooldown is still active.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests, retry in %s", e.RetryAfter)
}

// LockedOutError signals the phone is locked after repeated failed attempts.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("locked out, retry in %s", e.RetryAfter)
}
