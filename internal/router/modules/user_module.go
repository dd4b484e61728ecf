package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yegebere/gebeya-auth/internal/container"
	handlers "github.com/yegebere/gebeya-auth/internal/interface/http"
	"github.com/yegebere/gebeya-auth/internal/interface/middleware"
	"github.com/yegebere/gebeya-auth/pkg/helpers"
)

// UserModule wires the profile endpoints behind the session-token middleware.
// Protected: GET /api/profile, PUT /api/profile

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
