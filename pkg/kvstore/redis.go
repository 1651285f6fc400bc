package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

type Redis struct {
	client *redis.Client
}

func NewRedis(addr string, password string, db int) (KVStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return Redis{client: rdb}, nil
}

func wrapNil(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNoKey
	}
	return err
}

func (r Redis) Get(key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", wrapNil(err)
	}
	return val, nil
}

func (r Redis) Set(key string, value interface{}) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r Redis) SetEx(key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r Redis) Delete(key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r Redis) LPush(key string, values ...interface{}) error {
	return r.client.LPush(ctx, key, values...).Err()
}

func (r Redis) RPush(key string, values ...interface{}) error {
	return r.client.RPush(ctx, key, values...).Err()
}

func (r Redis) LPop(key string) (string, error) {
	val, err := r.client.LPop(ctx, key).Result()
	if err != nil {
		return "", wrapNil(err)
	}
	return val, nil
}

func (r Redis) RPop(key string) (string, error) {
	val, err := r.client.RPop(ctx, key).Result()
	if err != nil {
		return "", wrapNil(err)
	}
	return val, nil
}

func (r Redis) LLen(key string) (int64, error) {
	return r.client.LLen(ctx, key).Result()
}

func (r Redis) LIndex(key string, index int64) (string, error) {
	val, err := r.client.LIndex(ctx, key, index).Result()
	if err != nil {
		return "", wrapNil(err)
	}
	return val, nil
}

func (r Redis) LRange(key string, start, stop int64) ([]string, error) {
	return r.client.LRange(ctx, key, start, stop).Result()
}

func (r Redis) LRem(key string, count int64, value interface{}) error {
	return r.client.LRem(ctx, key, count, value).Err()
}

func (r Redis) INCR(key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r Redis) DECR(key string) (int64, error) {
	return r.client.Decr(ctx, key).Result()
}
