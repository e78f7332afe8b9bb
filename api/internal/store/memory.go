package store

import (
	"context"
	"sync"
)

type cacheKey struct {
	project string
	key     string
}

// MemoryCache — кэш в памяти процесса, живёт до рестарта.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[cacheKey]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[cacheKey]string)}
}

func (c *MemoryCache) Get(_ context.Context, project, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[cacheKey{project, key}]
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, project, key, value string) error {
	c.mu.Lock()
	c.m[cacheKey{project, key}] = value
	c.mu.Unlock()
	return nil
}
