// Package cache provides key/value stores used to memoize engine results.
// Engine functions are pure, so a cache only saves work and never changes
// an answer.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a string key/value store. Get reports a missing key as
// ok == false with a nil error; err is kept for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options configures New.
type Options struct {
	Backend   string
	RedisAddr string
	TTL       time.Duration
}

// New builds the store selected by opts. It returns a nil Store for BackendNone.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedisStore(opts.RedisAddr, opts.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
