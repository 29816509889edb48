package db

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mezonai/blackball/logx"
)

const redisScanCount = 1000

// RedisProvider implements IterableProvider on a Redis database, so several
// analysis hosts can share one blackball database.
type RedisProvider struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisProvider connects to the Redis server at address and selects database db.
func NewRedisProvider(address string, db int) (*RedisProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr: address,
		DB:   db,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logx.Info("REDIS", fmt.Sprintf("Connected to %s, db %d", address, db))
	return &RedisProvider{
		client: client,
		ctx:    ctx,
	}, nil
}

// Get retrieves a value by key
func (p *RedisProvider) Get(key []byte) ([]byte, error) {
	value, err := p.client.Get(p.ctx, string(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// GetBatch retrieves multiple values with one MGET
func (p *RedisProvider) GetBatch(keys [][]byte) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = string(k)
	}
	values, err := p.client.MGet(p.ctx, redisKeys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if s, ok := v.(string); ok {
			result[redisKeys[i]] = []byte(s)
		}
	}
	return result, nil
}

// Put stores a key-value pair
func (p *RedisProvider) Put(key, value []byte) error {
	return p.client.Set(p.ctx, string(key), value, 0).Err()
}

// Delete removes a key-value pair
func (p *RedisProvider) Delete(key []byte) error {
	return p.client.Del(p.ctx, string(key)).Err()
}

// Has checks if a key exists
func (p *RedisProvider) Has(key []byte) (bool, error) {
	count, err := p.client.Exists(p.ctx, string(key)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close closes the database connection
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

// Batch returns a batch backed by a MULTI/EXEC pipeline
func (p *RedisProvider) Batch() DatabaseBatch {
	return &RedisBatch{
		client: p.client,
		ctx:    p.ctx,
		pipe:   p.client.TxPipeline(),
	}
}

// IteratePrefix visits the keys with the given prefix in ascending order.
// Redis SCAN is unordered, so matching keys are collected and sorted first.
func (p *RedisProvider) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	return p.IterateFrom(prefix, prefix, fn)
}

// IterateFrom visits the keys with the given prefix that are >= start.
func (p *RedisProvider) IterateFrom(prefix, start []byte, fn func(key, value []byte) bool) error {
	pattern := escapeRedisPattern(string(prefix)) + "*"

	var keys []string
	var cursor uint64
	for {
		batch, next, err := p.client.Scan(p.ctx, cursor, pattern, redisScanCount).Result()
		if err != nil {
			return err
		}
		for _, k := range batch {
			if bytes.Compare([]byte(k), start) >= 0 {
				keys = append(keys, k)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		val, err := p.client.Get(p.ctx, k).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return err
		}
		if !fn([]byte(k), val) {
			return nil
		}
	}
	return nil
}

func escapeRedisPattern(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// RedisBatch implements DatabaseBatch for Redis
type RedisBatch struct {
	client *redis.Client
	ctx    context.Context
	pipe   redis.Pipeliner
}

// Put adds a key-value pair to the batch
func (b *RedisBatch) Put(key, value []byte) {
	b.pipe.Set(b.ctx, string(key), value, 0)
}

// Delete adds a deletion to the batch
func (b *RedisBatch) Delete(key []byte) {
	b.pipe.Del(b.ctx, string(key))
}

// Write commits all operations in the batch
func (b *RedisBatch) Write() error {
	_, err := b.pipe.Exec(b.ctx)
	return err
}

// Reset clears the batch
func (b *RedisBatch) Reset() {
	b.pipe.Discard()
	b.pipe = b.client.TxPipeline()
}

// Close releases batch resources
func (b *RedisBatch) Close() {
	b.pipe.Discard()
}
