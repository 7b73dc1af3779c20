package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
)

// RedisStore satisfies Store on top of a shared redis instance, for
// deployments where the client state should survive the host (kiosk
// terminals sharing one session). Keys are written without TTL to match the
// no-expiry contract of the local store.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(c context.Context, cfg config.Cache) (*RedisStore, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "storage NewRedisStore").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing redis client").Logger()
	logger.Info().Msg("initializing redis client")
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})
	logger.Info().Msg("initialized redis client")

	logger = logger.With().Str(log.KeyProcess, "initializing redis otel tracing").Logger()
	logger.Info().Msg("initializing redis otel tracing")
	err := redisotel.InstrumentTracing(client, redisotel.WithAttributes(semconv.DBSystemRedis))
	if err != nil {
		err = fmt.Errorf("failed initializing otel redis tracing with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized redis otel tracing")

	logger = logger.With().Str(log.KeyProcess, "pinging connection to redis").Logger()
	logger.Info().Msg("pinging connection to redis")
	err = client.Ping(c).Err()
	if err != nil {
		err = fmt.Errorf("failed pinging redis with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("pinged connection to redis")

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(key string) (string, error) {
	value, err := s.client.Get(context.Background(), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("failed getting key=%s with error=%w", key, ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed getting key=%s with error=%w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(key string, value string) error {
	err := s.client.Set(context.Background(), key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed setting key=%s with error=%w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(key string) error {
	err := s.client.Del(context.Background(), key).Err()
	if err != nil {
		return fmt.Errorf("failed removing key=%s with error=%w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
