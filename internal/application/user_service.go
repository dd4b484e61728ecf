package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	repo "github.com/yegebere/gebeya-auth/internal/domain/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService owns the profile fields of the identity record.
type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name     string
	Language string
	Region   string
	Zone     string
	Woreda   string
}

// UpdateProfile applies only the fields the caller provided.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Language != "" {
		u.Language = in.Language
	}
	if in.Region != "" {
		u.Region = in.Region
	}
	if in.Zone != "" {
		u.Zone = in.Zone
	}
	if in.Woreda != "" {
		u.Woreda = in.Woreda
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
