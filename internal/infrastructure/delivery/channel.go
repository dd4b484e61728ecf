package delivery

import (
	"context"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// Channel is one way of getting a one-time code to a phone. Implementations
// must bound their own I/O with timeouts; a Send that hangs would hang the
// issue request.
type Channel interface {
	Name() string
	Send(ctx context.Context, to phone.Number, message string) error
}

// OTPMessage renders the bilingual (Amharic/English) verification text sent
// over every channel.
func OTPMessage(code string, validFor string) string {
	return "የእርስዎ የማረጋገጫ ኮድ: " + code + "\nYour verification code: " + code + "\nValid for " + validFor + "."
}
