package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
)

func newUserFixture(t *testing.T) (*UserService, *entity.User) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	users := newMemUserRepo()
	u := &entity.User{ID: "u-1", PhoneNumber: "+251911234567", Name: "User 4567", Language: "am", IsVerified: true}
	if _, err := users.CreateIfAbsent(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return NewUserService(users, logger), u
}

func TestGetProfile(t *testing.T) {
	svc, seeded := newUserFixture(t)

	u, err := svc.GetProfile(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if u.PhoneNumber != seeded.PhoneNumber || u.Name != seeded.Name {
		t.Errorf("profile = %+v", u)
	}

	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, seeded := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, seeded.ID, UpdateProfileInput{Name: "Abebe Bekele", Region: "Oromia"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Name != "Abebe Bekele" || u.Region != "Oromia" {
		t.Errorf("updated = %+v", u)
	}
	// Untouched fields survive.
	if u.Language != "am" {
		t.Errorf("language = %q, want am", u.Language)
	}

	got, err := svc.GetProfile(ctx, seeded.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Abebe Bekele" || got.Region != "Oromia" {
		t.Errorf("persisted = %+v", got)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{Name: "X"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
