package store

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"portfolio-gif/internal/config"
)

const (
	BackendFirebase = "firebase"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendFirebase:
		log.Printf("[info] store backend=firebase url=%s", cfg.FirebaseURL)
		return NewFirebase(ctx, cfg.CredentialsPath, cfg.FirebaseURL)
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Printf("[info] store backend=redis addr=%s", cfg.RedisAddr)
		return NewRedis(client), nil
	case BackendMemory:
		log.Printf("[warn] store backend=memory, records are lost on exit")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
