package db

import (
	"context"
	"fmt"
	"log"
	"path"
	"sort"
	"sync"
	"time"
)

type mockEntry struct {
	value     string
	expiresAt time.Time
}

// MockRedisClient simulates a Redis client in memory, including key expiry.
type MockRedisClient struct {
	data    map[string]mockEntry
	mu      sync.RWMutex
	context context.Context
	now     func() time.Time
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]mockEntry),
		context: ctx,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for expiry.
func (m *MockRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	return m.SetWithTTL(key, value, 0)
}

// SetWithTTL stores a key-value pair; a zero ttl never expires.
func (m *MockRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := mockEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, exists := m.data[key]
	if !exists || m.expired(e) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return e.value, nil
}

// Keys matches live keys with glob patterns, close enough to Redis KEYS for tests.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k, e := range m.data {
		if m.expired(e) {
			continue
		}
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) Del(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Ping succeeds until the client's context is done.
func (m *MockRedisClient) Ping() error {
	if err := m.context.Err(); err != nil {
		return err
	}
	log.Println("[MockRedisClient] Ping successful")
	return nil
}

func (m *MockRedisClient) expired(e mockEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
