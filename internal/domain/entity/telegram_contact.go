package entity

import (
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// TelegramContact maps a phone number to the Telegram chat that registered
// it through the bot. The Telegram delivery channel can only reach phones
// present in this registry.
type TelegramContact struct {
	PhoneNumber phone.Number
	ChatID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
