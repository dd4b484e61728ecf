package repository

import (
	"context"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// TelegramContactRepository stores the phone -> chat-id registry populated
// by the bot webhook.
type TelegramContactRepository interface {
	Upsert(ctx context.Context, c *entity.TelegramContact) error
	GetByPhone(ctx context.Context, n phone.Number) (*entity.TelegramContact, error)
}
