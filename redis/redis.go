package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const (
	// VerifiedDoctorsKey caches the verified-doctor listing; invalidated on
	// any doctor profile or availability write.
	VerifiedDoctorsKey = "doctors:verified"

	denylistPrefix = "auth:denylist:"
)

// CacheSet stores a JSON payload under key with a TTL. Errors are returned
// so callers can fall through to the database.
func CacheSet(key string, payload []byte, ttl time.Duration) error {
	return Client.Set(Ctx, key, payload, ttl).Err()
}

// CacheGet fetches a cached JSON payload; redis.Nil means a miss.
func CacheGet(key string) ([]byte, error) {
	return Client.Get(Ctx, key).Bytes()
}

// CacheInvalidate drops a cached key.
func CacheInvalidate(key string) {
	Client.Del(Ctx, key)
}

// DenyToken records a logged-out access token until it would have expired.
func DenyToken(token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, denylistPrefix+token, "1", ttl).Err()
}

// IsTokenDenied reports whether an access token was explicitly logged out.
func IsTokenDenied(token string) bool {
	n, err := Client.Exists(Ctx, denylistPrefix+token).Result()
	return err == nil && n > 0
}
