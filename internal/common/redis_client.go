package common

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"lifewithchrist/community/internal/logging"
)

// NewRedisClient builds the shared client backing the notification pub/sub
// and the email task streams. A failed ping is not fatal: the pool reconnects
// lazily, so the server can come up before Redis does.
func NewRedisClient() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Redis ping failed, relying on lazy reconnect", "addr", addr, "error", err.Error())
		return client
	}

	logging.Info("Redis connection ready", "addr", addr)
	return client
}
