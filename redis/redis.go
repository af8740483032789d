package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meinhoongagan/hospital-app/models"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// queue cache entries go stale on their own if an invalidation is missed
const queueCacheTTL = 30 * time.Second

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, queue cache disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Failed to connect to Redis, queue cache disabled: %v", err)
		Client = nil
		return
	}
	fmt.Println("✅ Connected to Redis")
}

func queueKey(doctorID uint) string {
	return fmt.Sprintf("queue:doctor:%d", doctorID)
}

// GetCachedQueue returns the cached call order for a doctor, or ok=false on
// a miss or when the cache is disabled.
func GetCachedQueue(doctorID uint) ([]models.QueueEntry, bool) {
	if Client == nil {
		return nil, false
	}

	data, err := Client.Get(Ctx, queueKey(doctorID)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []models.QueueEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetCachedQueue stores the doctor's call order. Best effort.
func SetCachedQueue(doctorID uint, entries []models.QueueEntry) {
	if Client == nil {
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := Client.Set(Ctx, queueKey(doctorID), data, queueCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache queue for doctor %d: %v", doctorID, err)
	}
}

// InvalidateQueue drops the cached call order after a queue mutation.
func InvalidateQueue(doctorID uint) {
	if Client == nil {
		return
	}
	if err := Client.Del(Ctx, queueKey(doctorID)).Err(); err != nil {
		log.Printf("Failed to invalidate queue cache for doctor %d: %v", doctorID, err)
	}
}
