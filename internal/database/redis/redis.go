package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MIJINYAWA664/ComUnity/internal/config"
)

var Redis_Client *redis.Client

// InitRedis connects the shared client. Call after config.LoadConfig;
// the service cannot run without Redis so callers should treat an error
// as fatal.
func InitRedis(cfg *config.RedisConfig) error {
	Redis_Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: cfg.Protocol,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis_Client.Ping(ctx).Err(); err != nil {
		return err
	}

	log.Println("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if Redis_Client != nil {
		if err := Redis_Client.Close(); err != nil {
			log.Printf("Error closing Redis client: %s", err)
		} else {
			log.Println("Successfully disconnected from Redis")
		}
	}
}

func IsConnected() bool {
	if Redis_Client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return Redis_Client.Ping(ctx).Err() == nil
}
