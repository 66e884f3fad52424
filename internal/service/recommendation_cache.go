package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/redis/go-redis/v9"
)

// RecommendationCache stores ranked results in Redis. When Redis is not
// configured or unreachable every call is a miss.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRecommendationCache(ctx context.Context) *RecommendationCache {
	cfg := config.LoadRedisConfig()
	if cfg.Addr == "" {
		log.Println("[cache] REDIS_ADDR not set, recommendation cache disabled")
		return &RecommendationCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[cache] Redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		return &RecommendationCache{}
	}
	return &RecommendationCache{client: client, ttl: cfg.TTL}
}

func NewRecommendationCacheWithClient(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl}
}

func (c *RecommendationCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnOnce(err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[cache] corrupt entry %s: %v", key, err)
		return false
	}
	return true
}

func (c *RecommendationCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[cache] marshal %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.warnOnce(err)
	}
}

func (c *RecommendationCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RecommendationCache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("[cache] Redis error, bypassing cache: %v", err)
	}
}
