package helpers

import (
	"testing"
	"time"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret-for-tests", 30 * 24 * time.Hour)

	token, exp, err := m.GenerateSessionToken("user-1", phone.Number("+251911234567"), "am")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if until := time.Until(exp); until < 29*24*time.Hour {
		t.Errorf("expiry %v too close, want ~30 days out", until)
	}

	claims, err := m.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("uid = %q", claims.UserID)
	}
	if claims.PhoneNumber != "+251911234567" {
		t.Errorf("phone = %q", claims.PhoneNumber)
	}
	if claims.Language != "am" {
		t.Errorf("lang = %q", claims.Language)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	token, _, err := issuer.GenerateSessionToken("user-1", phone.Number("+251911234567"), "am")
	if err != nil {
		t.Fatal(err)
	}

	verifier := NewJWTManager("secret-b", time.Hour)
	if _, err := verifier.ParseSessionToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret-for-tests", -time.Minute)
	token, _, err := m.GenerateSessionToken("user-1", phone.Number("+251911234567"), "am")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ParseSessionToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewJWTManager("secret-for-tests", time.Hour)
	if _, err := m.ParseSessionToken("not.a.jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
