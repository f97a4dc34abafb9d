package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZaguanLabs/tweetlate"
)

// claimScript stamps ARGV[1] under KEYS[1] iff the stored timestamp is
// absent or not newer than the cutoff ARGV[2]. Timestamps use the
// fixed-width UTC layout, so the string comparison is a time comparison.
// Running the check and the stamp inside one script closes the
// read-then-write race that a plain GET/SET pair leaves open.
const claimScript = `local last = redis.call('GET', KEYS[1])
if last and last > ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[1])
return 1`

// RedisStore is a Redis-backed cache store. Timestamps are scalar keys;
// tweet lists map onto Redis lists with the newest element at the head.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "tweetlate:")
}

// NewRedisStore creates a Redis store and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "tweetlate:"
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// GetTimestamp retrieves a stored refresh timestamp. An absent key
// yields the zero time.
func (s *RedisStore) GetTimestamp(ctx context.Context, key string) (time.Time, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, &tweetlate.StoreError{Op: "get", Key: key, Cause: err}
	}

	ts, err := tweetlate.ParseTimestamp(val)
	if err != nil {
		return time.Time{}, &tweetlate.StoreError{Op: "get", Key: key, Cause: err}
	}
	return ts, nil
}

// SetTimestamp overwrites a stored refresh timestamp.
func (s *RedisStore) SetTimestamp(ctx context.Context, key string, ts time.Time) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, tweetlate.FormatTimestamp(ts), 0).Err(); err != nil {
		return &tweetlate.StoreError{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// ClaimRefresh stamps now under key iff the stored timestamp is at
// least threshold old (or absent), as a single server-side script.
func (s *RedisStore) ClaimRefresh(ctx context.Context, key string, now time.Time, threshold time.Duration) (bool, error) {
	cutoff := now.Add(-threshold)
	res, err := s.client.Eval(ctx, claimScript,
		[]string{s.keyPrefix + key},
		tweetlate.FormatTimestamp(now), tweetlate.FormatTimestamp(cutoff)).Result()
	if err != nil {
		return false, &tweetlate.StoreError{Op: "claim", Key: key, Cause: err}
	}

	claimed, ok := res.(int64)
	if !ok {
		return false, &tweetlate.StoreError{Op: "claim", Key: key, Cause: redis.Nil}
	}
	return claimed == 1, nil
}

// PeekFront returns the head of a list.
func (s *RedisStore) PeekFront(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.LIndex(ctx, s.keyPrefix+key, 0).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, &tweetlate.StoreError{Op: "peek", Key: key, Cause: err}
	}
	return val, true, nil
}

// Length returns the number of elements in a list.
func (s *RedisStore) Length(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return 0, &tweetlate.StoreError{Op: "length", Key: key, Cause: err}
	}
	return n, nil
}

// Range returns list elements from start to stop inclusive, head first.
func (s *RedisStore) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := s.client.LRange(ctx, s.keyPrefix+key, start, stop).Result()
	if err != nil {
		return nil, &tweetlate.StoreError{Op: "range", Key: key, Cause: err}
	}
	return vals, nil
}

// PushFront pushes elements ahead of prior content. LPUSH reverses its
// arguments, so elements are supplied tail-first to land elements[0] at
// the head.
func (s *RedisStore) PushFront(ctx context.Context, key string, elements ...string) error {
	if len(elements) == 0 {
		return nil
	}

	args := make([]interface{}, len(elements))
	for i, el := range elements {
		args[len(elements)-1-i] = el
	}

	if err := s.client.LPush(ctx, s.keyPrefix+key, args...).Err(); err != nil {
		return &tweetlate.StoreError{Op: "push", Key: key, Cause: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements CacheStore
var _ CacheStore = (*RedisStore)(nil)
