package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// incrExpireScript atomically increments a counter and sets its TTL when the
// key is new, so two concurrent failures can never under-count.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// IncrWithTTL runs the atomic increment-and-expire script and returns the
// counter value after the increment.
func IncrWithTTL(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (int64, error) {
	res, err := incrExpireScript.Run(ctx, rdb, []string{key}, ttl.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	n, _ := res.(int64)
	return n, nil
}
