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

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

func (r *OTPRepository) Create(ctx context.Context, rec *entity.OTPRecord) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO otp_verifications (phone_number, code_hash, channel, purpose, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, string(rec.PhoneNumber), rec.CodeHash, rec.Channel, rec.Purpose, rec.ExpiresAt)

	return row.Scan(&rec.ID, &rec.CreatedAt)
}

// FindActive picks the newest unconsumed, unexpired record: when several
// exist the most recently issued one supersedes the rest.
func (r *OTPRepository) FindActive(ctx context.Context, n phone.Number, now time.Time) (*entity.OTPRecord, error) {
	rec := &entity.OTPRecord{}
	var phoneStr string

	row := r.pool.QueryRow(ctx, `
		SELECT id, phone_number, code_hash, channel, purpose, expires_at, consumed, created_at
		FROM otp_verifications
		WHERE phone_number = $1 AND consumed = false AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`, string(n), now)

	if err := row.Scan(&rec.ID, &phoneStr, &rec.CodeHash, &rec.Channel, &rec.Purpose,
		&rec.ExpiresAt, &rec.Consumed, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.PhoneNumber = phone.Number(phoneStr)
	return rec, nil
}

// Consume flips consumed only if it is still false; the affected-row count
// tells concurrent verifiers apart, exactly one of them wins.
func (r *OTPRepository) Consume(ctx context.Context, id int64) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE otp_verifications SET consumed = true
		WHERE id = $1 AND consumed = false
	`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *OTPRepository) VoidActive(ctx context.Context, n phone.Number) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE otp_verifications SET consumed = true
		WHERE phone_number = $1 AND consumed = false
	`, string(n))
	return err
}

func (r *OTPRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM otp_verifications
		WHERE expires_at < $1 OR (consumed = true AND created_at < $1)
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.OTPRepository = (*OTPRepository)(nil)
