package events

import (
	"context"
	"time"
)

// Event types emitted by the auth flow.
const (
	TypeOTPIssued         = "otp_issued"
	TypeOTPDeliveryFailed = "otp_delivery_failed"
	TypeOTPMismatch       = "otp_mismatch"
	TypeLockout           = "lockout"
	TypeLogin             = "login"
	TypeUserCreated       = "user_created"
)

// AuthEvent is the JSON payload put on the RabbitMQ queue for the analytics
// sink. Phone numbers are always masked before publishing.
type AuthEvent struct {
	Type      string    `json:"type"`
	Phone     string    `json:"phone"`
	Channel   string    `json:"channel,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	IP        string    `json:"ip,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher is the outbound port for auth events. Publishing is
// fire-and-forget: a broker outage never fails an auth request.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
