package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yegebere/gebeya-auth/internal/container"
	handlers "github.com/yegebere/gebeya-auth/internal/interface/http"
	"github.com/yegebere/gebeya-auth/internal/interface/middleware"
)

// AuthModule exposes the public OTP endpoints.
// Both are unauthenticated, so each carries an IP+path rate limit on top of
// the issuer's own per-phone cooldown and the verifier's lockout.

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	issueLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/otp/issue", issueLimiter, m.Handler.IssueOTP)
	rg.POST("/auth/otp/verify", verifyLimiter, m.Handler.VerifyOTP)
}
