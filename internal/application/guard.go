package application

import (
	"context"
	"time"
)

// OTPGuard tracks the mutable per-phone counters around the OTP flow:
// issuance cooldown, failed-attempt count and lockout. Implementations must
// make FailedAttempt an atomic increment-and-read so concurrent failures
// cannot under-count past the lockout threshold.
type OTPGuard interface {
	// StartCooldown begins the issuance cooldown if none is running.
	// Returns false plus the remaining wait when one already is.
	StartCooldown(ctx context.Context, phone string, ttl time.Duration) (bool, time.Duration, error)
	// FailedAttempt records one failed verification and returns the total
	// within the current window.
	FailedAttempt(ctx context.Context, phone string, window time.Duration) (int64, error)
	// Lock locks the phone out for ttl.
	Lock(ctx context.Context, phone string, ttl time.Duration) error
	// LockedFor returns the remaining lockout, or zero when unlocked.
	LockedFor(ctx context.Context, phone string) (time.Duration, error)
	// Reset clears the failed-attempt counter after a successful verify
	// or a fresh issuance.
	Reset(ctx context.Context, phone string) error
}
