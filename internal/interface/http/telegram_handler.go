package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/application"
	"github.com/yegebere/gebeya-auth/pkg/response"
)

// telegramUpdate mirrors the slice of the Bot API update payload this
// service cares about: /start commands and shared contacts.
type telegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text    string `json:"text"`
		Contact *struct {
			PhoneNumber string `json:"phone_number"`
		} `json:"contact"`
	} `json:"message"`
}

type TelegramHandler struct {
	Svc    *application.TelegramService
	Logger *logrus.Logger
}

func NewTelegramHandler(svc *application.TelegramService, logger *logrus.Logger) *TelegramHandler {
	return &TelegramHandler{Svc: svc, Logger: logger}
}

// Webhook POST /api/telegram/webhook
// Always answers 200: Telegram retries non-2xx responses forever, and a bad
// update is not worth a retry storm.
func (h *TelegramHandler) Webhook(c *gin.Context) {
	var upd telegramUpdate
	if err := c.ShouldBindJSON(&upd); err != nil || upd.Message == nil {
		response.Success[any](c, http.StatusOK, gin.H{"ok": true}, "ignored", nil)
		return
	}

	chatID := upd.Message.Chat.ID
	switch {
	case upd.Message.Contact != nil:
		if err := h.Svc.RegisterContact(c.Request.Context(), upd.Message.Contact.PhoneNumber, chatID); err != nil {
			h.Logger.WithError(err).WithField("chat_id", chatID).Warn("telegram contact rejected")
		}
	case upd.Message.Text == "/start":
		h.Svc.HandleStart(c.Request.Context(), chatID)
	}

	response.Success[any](c, http.StatusOK, gin.H{"ok": true}, "processed", nil)
}
