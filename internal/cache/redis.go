package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the session snapshot store. An empty addr or an
// unreachable server leaves the bot running with in-memory sessions only.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_URL not set, sessions will not survive restarts")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("failed to connect to Redis at %s, sessions will not survive restarts: %v", addr, err)
		return nil
	}
	log.Println("Connected to Redis")
	return client
}
