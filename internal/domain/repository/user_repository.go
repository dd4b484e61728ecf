package repository

import (
	"context"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// UserRepository defines the interface for user-related database operations.
//
// CreateIfAbsent must be safe under concurrent calls for the same phone
// number: exactly one row is ever created, racing callers receive the
// existing row (created == false).
type UserRepository interface {
	CreateIfAbsent(ctx context.Context, u *entity.User) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, n phone.Number) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	TouchLastLogin(ctx context.Context, id string) error
}
