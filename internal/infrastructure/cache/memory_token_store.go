package cache

import (
	"context"
	"sync"

	"order_compare/internal/infrastructure/http/catkissfish"
)

// MemoryTokenStore keeps tokens in process. Dùng khi không cấu hình Redis.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]catkissfish.TokenCache
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]catkissfish.TokenCache)}
}

func (s *MemoryTokenStore) Load(_ context.Context, key string) (catkissfish.TokenCache, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tok, ok := s.tokens[key]
	return tok, ok, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, key string, token catkissfish.TokenCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[key] = token
	return nil
}

var _ catkissfish.TokenStore = (*MemoryTokenStore)(nil)
