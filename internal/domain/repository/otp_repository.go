package repository

import (
	"context"
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// OTPRepository is the storage port for one-time codes.
//
// Consume must be an atomic conditional update (consumed = false -> true,
// verified by affected-row count) so that two concurrent verifications of
// the same record cannot both succeed.
type OTPRepository interface {
	Create(ctx context.Context, rec *entity.OTPRecord) error
	// FindActive returns the most recently issued unconsumed, unexpired
	// record for the phone number, or nil if none exists.
	FindActive(ctx context.Context, n phone.Number, now time.Time) (*entity.OTPRecord, error)
	// Consume marks the record used. Returns false if it was already
	// consumed (or gone).
	Consume(ctx context.Context, id int64) (bool, error)
	// VoidActive marks every active record for the phone consumed, used
	// when delivery fails after persistence.
	VoidActive(ctx context.Context, n phone.Number) error
	// DeleteExpired removes consumed and expired rows older than the
	// cutoff. Returns the number of rows reaped.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
