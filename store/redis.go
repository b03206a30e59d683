package store

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the Redis-backed Store.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis at addr. On connection failure it returns nil
// and the caller falls back to the in-memory store.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (falling back to in-memory store)", err)
		return nil
	}
	log.Println("Redis connected successfully")
	return &Redis{client: client}
}

// Client exposes the underlying client for callers that need Redis
// primitives directly, such as the rate limiter.
func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() {
	if err := r.client.Close(); err != nil {
		log.Printf("Error closing Redis: %v", err)
	}
}
