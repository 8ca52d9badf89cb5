package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no snapshot is cached for a hash
var ErrCacheMiss = errors.New("key cache miss")

// KeyRecord is the cached snapshot of an issued API key. It carries only what
// the gateway needs to admit a request; the raw secret never enters the cache.
type KeyRecord struct {
	ID                 string     `json:"id"`
	KeyHash            string     `json:"keyHash"`
	DisplayName        string     `json:"displayName"`
	IsActive           bool       `json:"isActive"`
	RateLimitPerMinute int        `json:"rateLimitPerMinute"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastUsedAt         *time.Time `json:"lastUsedAt,omitempty"`
}

// KeyCache is a short-TTL read-through cache in front of the key store.
// Staleness is bounded by the TTL; deactivating a key additionally
// invalidates its entry so revocation takes effect promptly.
type KeyCache struct {
	ttl time.Duration
}

var (
	setCacheValue = Set
	getCacheValue = Get
	delCacheValue = Del
)

// NewKeyCache creates a key cache with the given TTL
func NewKeyCache(ttl time.Duration) *KeyCache {
	return &KeyCache{ttl: ttl}
}

// Put stores a snapshot under its key hash
func (c *KeyCache) Put(ctx context.Context, record *KeyRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return setCacheValue(ctx, "apikey:"+record.KeyHash, jsonData, c.ttl)
}

// Lookup retrieves the snapshot cached for a key hash
func (c *KeyCache) Lookup(ctx context.Context, keyHash string) (*KeyRecord, error) {
	raw, err := getCacheValue(ctx, "apikey:"+keyHash)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var record KeyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Invalidate drops the snapshot cached for a key hash
func (c *KeyCache) Invalidate(ctx context.Context, keyHash string) error {
	return delCacheValue(ctx, "apikey:"+keyHash)
}
