package cache

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	db := 0
	if dbEnv := os.Getenv("REDIS_DB"); dbEnv != "" {
		parsed, err := strconv.Atoi(dbEnv)
		if err != nil {
			log.Printf("⚠️  Invalid value for REDIS_DB: %s\n", dbEnv)
		} else {
			db = parsed
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}
	log.Println("✅ Connected to Redis")
}
