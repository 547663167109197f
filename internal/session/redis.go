package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

// NewRedisClient connects to the remote session record store. The URL is
// parsed by go-redis (redis:// and rediss:// schemes); when cfg.RedisToken
// is set it overrides any password embedded in the URL, which is how hosted
// stores hand out their auth tokens.
//
// The connection is verified with a ping so a misconfigured store fails the
// process at startup instead of on the first request.
func NewRedisClient(ctx context.Context, cfg config.Session, log *logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error parsing session store URL")
		return nil, fmt.Errorf("error parsing session store URL: %w", err)
	}

	if cfg.RedisToken != "" {
		opts.Password = cfg.RedisToken
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting session store (ping)")
		return nil, fmt.Errorf("error connecting session store: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to session store successfully")

	return client, nil
}
