package db

import (
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has expired.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the key-value operations the schedule cache needs.
type RedisClient interface {
	Set(key, value string) error
	SetWithTTL(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(keys ...string) error
}
