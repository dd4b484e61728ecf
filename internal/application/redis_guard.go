package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yegebere/gebeya-auth/pkg/helpers"
)

// RedisOTPGuard keeps the per-phone OTP counters in Redis so they survive
// restarts and are shared across instances.
type RedisOTPGuard struct {
	RDB *redis.Client
}

func NewRedisOTPGuard(rdb *redis.Client) *RedisOTPGuard {
	return &RedisOTPGuard{RDB: rdb}
}

func (g *RedisOTPGuard) StartCooldown(ctx context.Context, phone string, ttl time.Duration) (bool, time.Duration, error) {
	key := helpers.KeyOTPCooldown(phone)
	ok, err := g.RDB.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}
	remaining, err := g.RDB.TTL(ctx, key).Result()
	if err != nil || remaining < 0 {
		remaining = ttl
	}
	return false, remaining, nil
}

func (g *RedisOTPGuard) FailedAttempt(ctx context.Context, phone string, window time.Duration) (int64, error) {
	return helpers.IncrWithTTL(ctx, g.RDB, helpers.KeyOTPAttempts(phone), window)
}

func (g *RedisOTPGuard) Lock(ctx context.Context, phone string, ttl time.Duration) error {
	return g.RDB.Set(ctx, helpers.KeyOTPLock(phone), "1", ttl).Err()
}

func (g *RedisOTPGuard) LockedFor(ctx context.Context, phone string) (time.Duration, error) {
	remaining, err := g.RDB.TTL(ctx, helpers.KeyOTPLock(phone)).Result()
	if err != nil {
		return 0, err
	}
	if remaining <= 0 {
		// -1 (no ttl) and -2 (no key) both mean not locked
		return 0, nil
	}
	return remaining, nil
}

func (g *RedisOTPGuard) Reset(ctx context.Context, phone string) error {
	return g.RDB.Del(ctx, helpers.KeyOTPAttempts(phone)).Err()
}

var _ OTPGuard = (*RedisOTPGuard)(nil)
