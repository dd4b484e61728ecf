package entity

import (
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// Delivery channels for one-time codes.
const (
	ChannelSMS      = "sms"
	ChannelTelegram = "telegram"
)

// Issuance purposes.
const (
	PurposeLogin        = "login"
	PurposeRegistration = "registration"
)

// OTPRecord is one issued one-time code. The code itself is stored as a
// bcrypt hash; the plaintext only ever travels over the delivery channel.
//
// At most one active (unconsumed, unexpired) record is authoritative per
// phone number: the most recently issued one. Earlier records are superseded
// and eventually reaped.
type OTPRecord struct {
	ID          int64
	PhoneNumber phone.Number
	CodeHash    string
	Channel     string
	Purpose     string
	ExpiresAt   time.Time
	Consumed    bool
	CreatedAt   time.Time
}
