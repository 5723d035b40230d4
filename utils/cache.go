// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"salonbot/config"
)

// SessionCacheClient backs the redis dialogue session store.
var SessionCacheClient *redis.Client

// InitSessionCache connects to the Redis DB holding dialogue sessions.
func InitSessionCache() error {
	client, err := NewRedisClient(config.AppConfig.RedisSessionDB)
	if err != nil {
		return fmt.Errorf("redis (sessions): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// NewRedisClient opens and pings a client for the given logical DB.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
