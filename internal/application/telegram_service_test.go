package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

type memContactRepo struct {
	mu      sync.Mutex
	byPhone map[phone.Number]*entity.TelegramContact
}

func (r *memContactRepo) Upsert(_ context.Context, c *entity.TelegramContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byPhone == nil {
		r.byPhone = make(map[phone.Number]*entity.TelegramContact)
	}
	cp := *c
	r.byPhone[c.PhoneNumber] = &cp
	return nil
}

func (r *memContactRepo) GetByPhone(_ context.Context, n phone.Number) (*entity.TelegramContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byPhone[n]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, errors.New("not found")
}

type chatRecorder struct {
	chatIDs []int64
	texts   []string
	fail    error
}

func (c *chatRecorder) SendMessage(_ context.Context, chatID int64, text string) error {
	if c.fail != nil {
		return c.fail
	}
	c.chatIDs = append(c.chatIDs, chatID)
	c.texts = append(c.texts, text)
	return nil
}

func newTelegramFixture() (*TelegramService, *memContactRepo, *chatRecorder) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	contacts := &memContactRepo{}
	chat := &chatRecorder{}
	return NewTelegramService(contacts, chat, logger), contacts, chat
}

func TestRegisterContactNormalizesAndLinks(t *testing.T) {
	svc, contacts, chat := newTelegramFixture()

	// Telegram shares contact numbers international without a plus.
	if err := svc.RegisterContact(context.Background(), "251911234567", 42); err != nil {
		t.Fatalf("RegisterContact: %v", err)
	}

	c, err := contacts.GetByPhone(context.Background(), "+251911234567")
	if err != nil {
		t.Fatalf("contact not stored: %v", err)
	}
	if c.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", c.ChatID)
	}
	if len(chat.texts) != 1 {
		t.Fatalf("confirmations sent = %d, want 1", len(chat.texts))
	}
}

func TestRegisterContactRejectsForeignNumber(t *testing.T) {
	svc, contacts, _ := newTelegramFixture()

	err := svc.RegisterContact(context.Background(), "254711234567", 42)
	if !errors.Is(err, phone.ErrInvalid) {
		t.Fatalf("err = %v, want phone.ErrInvalid", err)
	}
	if len(contacts.byPhone) != 0 {
		t.Error("foreign contact was stored")
	}
}

func TestRegisterContactUpdatesChatID(t *testing.T) {
	svc, contacts, _ := newTelegramFixture()
	ctx := context.Background()

	if err := svc.RegisterContact(ctx, "0911234567", 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.RegisterContact(ctx, "0911234567", 2); err != nil {
		t.Fatal(err)
	}

	c, err := contacts.GetByPhone(ctx, "+251911234567")
	if err != nil {
		t.Fatal(err)
	}
	if c.ChatID != 2 {
		t.Errorf("chat id = %d, want the latest (2)", c.ChatID)
	}
}

func TestHandleStartGreets(t *testing.T) {
	svc, _, chat := newTelegramFixture()
	svc.HandleStart(context.Background(), 7)
	if len(chat.chatIDs) != 1 || chat.chatIDs[0] != 7 {
		t.Errorf("greeting chats = %v, want [7]", chat.chatIDs)
	}
}
