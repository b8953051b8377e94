package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Geeky-har/My-Blog/config"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// InitRedis creates the Redis client when a host is configured. Without a
// host the blog runs with in-memory session revocation only.
func InitRedis(cfg config.AppConfig) {
	if cfg.RedisHost == "" {
		return
	}

	redisMu.Lock()
	defer redisMu.Unlock()
	if redisClient != nil {
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		Sugar.Warnf("redis unreachable, falling back to in-memory session revocation: %v", err)
	}
}

// GetRedis returns the Redis client or nil when not configured.
func GetRedis() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	return redisClient
}
