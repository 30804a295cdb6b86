package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	domain "github.com/BruksfildServices01/certhub/internal/domain/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/logging"
)

const (
	keyPrefix    = "certhub:submit:"
	pollInterval = 25 * time.Millisecond
)

// ErrLockTimeout is returned when a key stays held for longer than the wait limit.
var ErrLockTimeout = errors.New("timed out waiting for submission lock")

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares submission locks between API instances.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

var _ domain.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: ttl}
}

// New picks the Redis locker when a client is available.
func New(client *redis.Client, ttl time.Duration) domain.Locker {
	if client == nil {
		return NewLocalLocker()
	}
	return NewRedisLocker(client, ttl)
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	fullKey := keyPrefix + key

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, fullKey, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, errors.Wrap(err, "acquire submission lock")
		}
		if ok {
			return func() {
				// release with a fresh context; the caller's may be done
				rctx, rcancel := context.WithTimeout(context.Background(), time.Second)
				defer rcancel()
				if err := releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
					logging.Log.WithError(err).WithField("key", fullKey).Warn("release submission lock")
				}
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
