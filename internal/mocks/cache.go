package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/tasktrack-api/internal/platform/cache"
)

// MockCache implements cache.Cache for testing. It wraps an in-memory
// cache and lets tests inject failures per operation to exercise the
// degraded-cache paths.
type MockCache struct {
	mu      sync.Mutex
	backing cache.Cache

	GetErr           error
	SetErr           error
	DeleteErr        error
	DeletePatternErr error

	GetCalls           int
	SetCalls           int
	DeleteCalls        int
	DeletePatternCalls int
}

// NewMockCache creates a MockCache backed by an in-memory cache.
func NewMockCache() *MockCache {
	return &MockCache{backing: cache.NewMemory()}
}

// Get implements cache.Cache.
func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	return m.backing.Get(ctx, key)
}

// Set implements cache.Cache.
func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.SetCalls++
	m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	return m.backing.Set(ctx, key, value, ttl)
}

// Delete implements cache.Cache.
func (m *MockCache) Delete(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	return m.backing.Delete(ctx, key)
}

// DeletePattern implements cache.Cache.
func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	m.DeletePatternCalls++
	m.mu.Unlock()
	if m.DeletePatternErr != nil {
		return m.DeletePatternErr
	}
	return m.backing.DeletePattern(ctx, pattern)
}

// Close implements cache.Cache.
func (m *MockCache) Close() error {
	return m.backing.Close()
}
