package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	"github.com/yegebere/gebeya-auth/internal/domain/repository"
)

type TelegramContactRepository struct {
	pool *pgxpool.Pool
}

func NewTelegramContactRepository(pool *pgxpool.Pool) *TelegramContactRepository {
	return &TelegramContactRepository{pool: pool}
}

func (r *TelegramContactRepository) Upsert(ctx context.Context, c *entity.TelegramContact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO telegram_contacts (phone_number, chat_id)
		VALUES ($1, $2)
		ON CONFLICT (phone_number) DO UPDATE SET chat_id = EXCLUDED.chat_id, updated_at = now()
		RETURNING created_at, updated_at
	`, string(c.PhoneNumber), c.ChatID)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *TelegramContactRepository) GetByPhone(ctx context.Context, n phone.Number) (*entity.TelegramContact, error) {
	c := &entity.TelegramContact{}
	var phoneStr string

	row := r.pool.QueryRow(ctx, `
		SELECT phone_number, chat_id, created_at, updated_at
		FROM telegram_contacts
		WHERE phone_number = $1
	`, string(n))

	if err := row.Scan(&phoneStr, &c.ChatID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.PhoneNumber = phone.Number(phoneStr)
	return c, nil
}

var _ repository.TelegramContactRepository = (*TelegramContactRepository)(nil)
