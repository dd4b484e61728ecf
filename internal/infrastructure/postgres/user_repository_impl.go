package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	"github.com/yegebere/gebeya-auth/internal/domain/repository"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, phone_number, name, language, region, zone, woreda, is_verified, created_at, updated_at, last_login_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var phoneStr string
	if err := row.Scan(&u.ID, &phoneStr, &u.Name, &u.Language, &u.Region, &u.Zone, &u.Woreda,
		&u.IsVerified, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.PhoneNumber = phone.Number(phoneStr)
	return u, nil
}

// CreateIfAbsent inserts the user unless a row with the same phone number
// already exists. The unique index on phone_number decides races: the loser
// re-reads the winner's row instead of surfacing a conflict.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u *entity.User) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, phone_number, name, language, is_verified, last_login_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (phone_number) DO NOTHING
		RETURNING created_at, updated_at, last_login_at
	`, u.ID, string(u.PhoneNumber), u.Name, u.Language, u.IsVerified)

	err := row.Scan(&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	// Lost the race (or user pre-existed): fetch the winner.
	existing, err := r.GetByPhone(ctx, u.PhoneNumber)
	if err != nil {
		return false, err
	}
	*u = *existing
	return false, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByPhone(ctx context.Context, n phone.Number) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE phone_number = $1
	`, string(n))
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, language = $2, region = $3, zone = $4, woreda = $5, updated_at = $6
		WHERE id = $7
	`, u.Name, u.Language, u.Region, u.Zone, u.Woreda, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
