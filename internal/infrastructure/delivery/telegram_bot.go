package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	"github.com/yegebere/gebeya-auth/internal/domain/repository"
)

var ErrNoChatRegistered = errors.New("no telegram chat registered for phone")

// TelegramBot delivers codes through the Telegram Bot API. It can only reach
// phones whose owners registered a chat via the bot webhook, so Send fails
// fast with ErrNoChatRegistered for everyone else and the chain moves on.
type TelegramBot struct {
	Token    string
	BaseURL  string
	Client   *http.Client
	Contacts repository.TelegramContactRepository
	Logger   *logrus.Logger
}

func NewTelegramBot(token, baseURL string, timeout time.Duration, contacts repository.TelegramContactRepository, logger *logrus.Logger) *TelegramBot {
	return &TelegramBot{
		Token:    token,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Client:   &http.Client{Timeout: timeout},
		Contacts: contacts,
		Logger:   logger,
	}
}

func (b *TelegramBot) Name() string { return "telegram" }

func (b *TelegramBot) Send(ctx context.Context, to phone.Number, message string) error {
	if b.Token == "" {
		return errors.New("telegram bot not configured")
	}
	contact, err := b.Contacts.GetByPhone(ctx, to)
	if err != nil || contact == nil {
		return ErrNoChatRegistered
	}
	return b.SendMessage(ctx, contact.ChatID, message)
}

// SendMessage posts a plain message to a chat; also used by the webhook
// handler for registration replies.
func (b *TelegramBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := map[string]any{"chat_id": chatID, "text": text}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", b.BaseURL, b.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		if b.Logger != nil {
			b.Logger.WithFields(logrus.Fields{"status": resp.StatusCode, "chat_id": chatID}).Warn("telegram sendMessage failed")
		}
		return fmt.Errorf("telegram status %d", resp.StatusCode)
	}
	return nil
}

var _ Channel = (*TelegramBot)(nil)
