package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared client, set by InitRedis.
var RedisClient *redis.Client

// Ctx is the background context used by fire-and-forget Redis calls.
var Ctx = context.Background()

// InitRedis connects to Redis using REDIS_* environment variables. Rate
// limiting, chat and live notifications all ride on Redis, so a failed ping
// is returned to the caller rather than degraded around.
func InitRedis() error {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("redis not reachable at %s: %w", addr, err)
	}

	log.Println("✅ Connected to Redis:", addr)
	return nil
}

// ======================
// Token helpers (password reset)
// ======================

func SetToken(key, value string, ttl time.Duration) error {
	return RedisClient.Set(Ctx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	return RedisClient.Get(Ctx, key).Result()
}

func DeleteToken(key string) error {
	return RedisClient.Del(Ctx, key).Err()
}

// ======================
// JSON cache helpers
// ======================

// CacheGetJSON loads a cached value into dest. Returns false on miss.
func CacheGetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := RedisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// CacheSetJSON stores a value as JSON with a TTL.
func CacheSetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// CacheInvalidate drops one or more cache keys.
func CacheInvalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := RedisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate cache keys %v: %v", keys, err)
	}
}
