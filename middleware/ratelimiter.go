package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sharath018/hotel-management-backend/utils"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Counters live in Redis so limits hold across replicas; if the store
// cannot be created the limiter falls back to per-process memory.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	store, err := sredis.NewStoreWithOptions(utils.RedisClient, limiter.StoreOptions{
		Prefix: "ratelimit",
	})
	if err != nil {
		log.Printf("⚠️ Redis rate limit store unavailable, using in-memory store: %v", err)
		instance := limiter.New(memory.NewStore(), rate)
		return ginlimiter.NewMiddleware(instance)
	}

	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}
