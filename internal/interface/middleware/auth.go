package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yegebere/gebeya-auth/pkg/helpers"
	"github.com/yegebere/gebeya-auth/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the bearer session token issued after OTP verification and
// injects the caller's identity into the Gin context. Validation is
// stateless, the token's signature and expiry are the whole session.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set("userPhone", claims.PhoneNumber)
		c.Set("userLanguage", claims.Language)
		c.Next()
	}
}
