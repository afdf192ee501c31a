package cache

import (
	"context"
	"sync"
)

type memoryCache struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// NewMemoryCache keeps every scope in process memory. Used for local
// development and tests; contents are lost on restart.
func NewMemoryCache() Cache {
	return &memoryCache{scopes: make(map[string]map[string]string)}
}

func (m *memoryCache) Scope(id string) Store {
	return memoryScope{cache: m, id: id}
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func (m *memoryCache) Close() error { return nil }

type memoryScope struct {
	cache *memoryCache
	id    string
}

func (s memoryScope) Get(_ context.Context, key string) (string, bool, error) {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	val, ok := s.cache.scopes[s.id][key]
	return val, ok, nil
}

func (s memoryScope) Set(_ context.Context, key, value string) error {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()

	scope, ok := s.cache.scopes[s.id]
	if !ok {
		scope = make(map[string]string)
		s.cache.scopes[s.id] = scope
	}
	scope[key] = value
	return nil
}

func (s memoryScope) Remove(_ context.Context, key string) error {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()

	scope, ok := s.cache.scopes[s.id]
	if !ok {
		return nil
	}
	delete(scope, key)
	if len(scope) == 0 {
		delete(s.cache.scopes, s.id)
	}
	return nil
}
