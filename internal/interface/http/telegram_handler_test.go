package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/application"
	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

type contactStore struct {
	byPhone map[phone.Number]int64
}

func (s *contactStore) Upsert(_ context.Context, c *entity.TelegramContact) error {
	s.byPhone[c.PhoneNumber] = c.ChatID
	return nil
}

func (s *contactStore) GetByPhone(_ context.Context, n phone.Number) (*entity.TelegramContact, error) {
	if id, ok := s.byPhone[n]; ok {
		return &entity.TelegramContact{PhoneNumber: n, ChatID: id}, nil
	}
	return nil, nil
}

type silentChat struct{ sent int }

func (c *silentChat) SendMessage(_ context.Context, _ int64, _ string) error {
	c.sent++
	return nil
}

func newWebhookRouter(t *testing.T) (*gin.Engine, *contactStore, *silentChat) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	contacts := &contactStore{byPhone: make(map[phone.Number]int64)}
	chat := &silentChat{}
	h := NewTelegramHandler(application.NewTelegramService(contacts, chat, logger), logger)

	r := gin.New()
	r.POST("/api/telegram/webhook", h.Webhook)
	return r, contacts, chat
}

func postWebhook(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRegistersSharedContact(t *testing.T) {
	r, contacts, chat := newWebhookRouter(t)

	w := postWebhook(r, `{"update_id":1,"message":{"chat":{"id":42},"contact":{"phone_number":"251911234567"}}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if contacts.byPhone["+251911234567"] != 42 {
		t.Errorf("registry = %v, want +251911234567 -> 42", contacts.byPhone)
	}
	if chat.sent != 1 {
		t.Errorf("confirmations = %d, want 1", chat.sent)
	}
}

func TestWebhookStartCommandGreets(t *testing.T) {
	r, _, chat := newWebhookRouter(t)

	w := postWebhook(r, `{"update_id":2,"message":{"chat":{"id":7},"text":"/start"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if chat.sent != 1 {
		t.Errorf("greetings = %d, want 1", chat.sent)
	}
}

// Telegram retries any non-2xx response, so even junk must get a 200.
func TestWebhookAlwaysAnswers200(t *testing.T) {
	r, contacts, _ := newWebhookRouter(t)

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"update_id":3}`,
		`{"update_id":4,"message":{"chat":{"id":9},"text":"hello"}}`,
		`{"update_id":5,"message":{"chat":{"id":9},"contact":{"phone_number":"12345"}}}`,
	} {
		if w := postWebhook(r, body); w.Code != http.StatusOK {
			t.Errorf("body %q -> status %d, want 200", body, w.Code)
		}
	}
	if len(contacts.byPhone) != 0 {
		t.Errorf("junk updates registered contacts: %v", contacts.byPhone)
	}
}
