package cache

import "errors"

var (
	// ErrCacheMiss indicates the key does not exist or has expired
	ErrCacheMiss = errors.New("cache miss")
)
