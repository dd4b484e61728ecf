package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yegebere/gebeya-auth/internal/container"
	handlers "github.com/yegebere/gebeya-auth/internal/interface/http"
	"github.com/yegebere/gebeya-auth/internal/interface/middleware"
)

// TelegramModule receives Bot API webhook updates that register phone
// numbers for the fallback delivery channel.

type TelegramModule struct {
	Handler *handlers.TelegramHandler
}

func NewTelegramModule(h *handlers.TelegramHandler) *TelegramModule {
	return &TelegramModule{Handler: h}
}

func (m *TelegramModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.POST("/telegram/webhook", limiter, m.Handler.Webhook)
}
