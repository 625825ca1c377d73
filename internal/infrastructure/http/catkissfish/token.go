package catkissfish

import (
	"context"
	"time"

	"order_compare/pkg/logger"
)

// TokenCache is a client token together with the moment it stops being used.
type TokenCache struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t TokenCache) Valid(now time.Time) bool {
	return t.Token != "" && now.Before(t.ExpiresAt)
}

// TTL is the remaining lifetime, zero once expired.
func (t TokenCache) TTL(now time.Time) time.Duration {
	if !t.Valid(now) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// TokenStore keeps tokens keyed by client id.
type TokenStore interface {
	Load(ctx context.Context, key string) (TokenCache, bool, error)
	Save(ctx context.Context, key string, token TokenCache) error
}

type tokenFetcher interface {
	GetAccessToken(ctx context.Context) (TokenCache, error)
	ClientID() string
}

// TokenSource hands out a cached token while it is valid and fetches a new
// one otherwise. Store errors are logged and treated as a cache miss.
type TokenSource struct {
	fetcher tokenFetcher
	store   TokenStore
	log     logger.Logger
	now     func() time.Time
}

func NewTokenSource(fetcher tokenFetcher, store TokenStore, log logger.Logger) *TokenSource {
	return &TokenSource{
		fetcher: fetcher,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

func (s *TokenSource) Token(ctx context.Context) (string, error) {
	key := s.fetcher.ClientID()

	cached, ok, err := s.store.Load(ctx, key)
	if err != nil {
		s.log.Warn("load cached catkissfish token failed", logger.Error(err))
	}
	if ok && cached.Valid(s.now()) {
		return cached.Token, nil
	}

	fresh, err := s.fetcher.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}

	if err := s.store.Save(ctx, key, fresh); err != nil {
		s.log.Warn("save catkissfish token failed", logger.Error(err))
	}
	return fresh.Token, nil
}
