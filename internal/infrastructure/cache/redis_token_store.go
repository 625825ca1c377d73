package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"order_compare/internal/config"
	"order_compare/internal/infrastructure/http/catkissfish"
)

const defaultTokenKeyPrefix = "order_compare:catkissfish:token:"

// RedisTokenStore shares the Cat Kiss Fish token between instances. Keys
// expire together with the token.
type RedisTokenStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisTokenStore connects and pings Redis.
func NewRedisTokenStore(ctx context.Context, cfg config.RedisConfig) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisTokenStoreWithClient(client, ""), nil
}

func NewRedisTokenStoreWithClient(client *redis.Client, keyPrefix string) *RedisTokenStore {
	if keyPrefix == "" {
		keyPrefix = defaultTokenKeyPrefix
	}
	return &RedisTokenStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (s *RedisTokenStore) Load(ctx context.Context, key string) (catkissfish.TokenCache, bool, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return catkissfish.TokenCache{}, false, nil
	}
	if err != nil {
		return catkissfish.TokenCache{}, false, fmt.Errorf("failed to load token: %w", err)
	}

	var tok catkissfish.TokenCache
	if err := json.Unmarshal(raw, &tok); err != nil {
		return catkissfish.TokenCache{}, false, fmt.Errorf("failed to decode token: %w", err)
	}
	return tok, true, nil
}

// Save is a no-op for an already expired token.
func (s *RedisTokenStore) Save(ctx context.Context, key string, token catkissfish.TokenCache) error {
	ttl := token.TTL(s.now())
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

var _ catkissfish.TokenStore = (*RedisTokenStore)(nil)
