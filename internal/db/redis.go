package db

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/logging"
)

// NewRedis returns nil when Redis is not configured or unreachable, in which
// case callers fall back to process-local locking.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logging.Log.Info("redis not configured, using in-process submission lock")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Log.WithError(err).
			WithField("addr", cfg.Redis.Addr).
			Warn("redis unreachable, using in-process submission lock")
		_ = client.Close()
		return nil
	}

	logging.Log.WithField("addr", cfg.Redis.Addr).Info("connected to redis")
	return client
}
