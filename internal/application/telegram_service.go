package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	repo "github.com/yegebere/gebeya-auth/internal/domain/repository"
)

const (
	welcomeText = "እንኳን ወደ የገበሬ ገበያ በደህና መጡ!\nWelcome to Yegebere Gebeya!\n\nPlease share your phone number to receive verification codes."
	linkedText  = "ስልክ ቁጥርዎ በተሳካ ሁኔታ ተመዝግቧል! Phone number registered successfully!"
)

// ChatMessenger is the outbound side of the bot conversation.
type ChatMessenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramService maintains the phone -> chat registry the fallback delivery
// channel depends on.
type TelegramService struct {
	Contacts repo.TelegramContactRepository
	Bot      ChatMessenger
	Logger   *logrus.Logger
}

func NewTelegramService(contacts repo.TelegramContactRepository, bot ChatMessenger, logger *logrus.Logger) *TelegramService {
	return &TelegramService{Contacts: contacts, Bot: bot, Logger: logger}
}

// HandleStart greets a chat and asks it to share a contact.
func (s *TelegramService) HandleStart(ctx context.Context, chatID int64) {
	if err := s.Bot.SendMessage(ctx, chatID, welcomeText); err != nil {
		s.Logger.WithError(err).WithField("chat_id", chatID).Warn("telegram welcome failed")
	}
}

// RegisterContact links a shared phone number to the chat that shared it.
// Telegram sends contact numbers in international form without a plus.
func (s *TelegramService) RegisterContact(ctx context.Context, rawPhone string, chatID int64) error {
	n, err := phone.Normalize(rawPhone)
	if err != nil {
		return err
	}
	c := &entity.TelegramContact{PhoneNumber: n, ChatID: chatID}
	if err := s.Contacts.Upsert(ctx, c); err != nil {
		return err
	}
	if err := s.Bot.SendMessage(ctx, chatID, linkedText); err != nil {
		s.Logger.WithError(err).WithField("chat_id", chatID).Warn("telegram confirmation failed")
	}
	s.Logger.WithFields(logrus.Fields{"phone": n.Masked(), "chat_id": chatID}).Info("telegram contact registered")
	return nil
}
