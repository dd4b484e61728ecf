package entity

import (
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// User is the aggregate root for the identity domain. Users are keyed by
// their canonical phone number; there is no password, possession of the
// phone is proven through the OTP flow.
type User struct {
	ID          string
	PhoneNumber phone.Number
	Name        string
	Language    string // ISO 639-1, defaults to "am"
	Region      string
	Zone        string
	Woreda      string
	IsVerified  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt time.Time
}

// DefaultName is the placeholder display name for users who have not set one.
func DefaultName(n phone.Number) string {
	return "User " + n.Last4()
}
