// Package kvstore is a thin key-value facade. Redis backs it in deployment;
// the in-process implementation backs dev runs and tests. Auth keeps its
// session-token whitelist here so revocation works across restarts when Redis
// is configured.
package kvstore

import (
	"errors"
	"time"
)

// ErrNoKey is returned when the key (or list index) does not exist.
var ErrNoKey = errors.New("kvstore: no such key")

type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value interface{}) error
	SetEx(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
	LPush(key string, values ...interface{}) error
	RPush(key string, values ...interface{}) error
	LPop(key string) (string, error)
	RPop(key string) (string, error)
	LLen(key string) (int64, error)
	LIndex(key string, index int64) (string, error)
	LRange(key string, start, stop int64) ([]string, error)
	LRem(key string, count int64, value interface{}) error
	INCR(key string) (int64, error)
	DECR(key string) (int64, error)
}
