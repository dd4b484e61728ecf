package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// JWTManager issues and validates the long-lived session credential handed
// out after OTP verification. Validation is stateless: nothing but the
// signing secret lives server-side.
type JWTManager struct {
	Secret     []byte
	SessionTTL time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, sessionTTL time.Duration) *JWTManager {
	m := &JWTManager{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

type Claims struct {
	UserID      string `json:"uid"`
	PhoneNumber string `json:"phone"`
	Language    string `json:"lang,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateSessionToken(userID string, number phone.Number, language string) (string, time.Time, error) {
	exp := time.Now().Add(m.SessionTTL)
	claims := &Claims{
		UserID:      userID,
		PhoneNumber: number.String(),
		Language:    language,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
