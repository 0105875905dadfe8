package middleware

import (
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"GradLinkUp-backend/internal/utilities"
)

func ipKey(c *gin.Context) string {
	return "ip: " + c.ClientIP()
}

// userKey must run after RequireAuth, request without user share its IP bucket
func userKey(c *gin.Context) string {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		return ipKey(c)
	}
	return "user: " + user.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	retry := int(time.Until(info.ResetTime).Seconds()) + 1
	c.Header("Retry-After", strconv.Itoa(retry))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, utilities.ErrorResponse{
		Error: "Too many requests. Please try again later.",
	})
}

func newRateLimiter(client redis.UniversalClient, rate time.Duration, limit uint, key func(*gin.Context) string) gin.HandlerFunc {
	var store ratelimit.Store
	if client != nil {
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: client.(*redis.Client),
			Rate:        rate,
			Limit:       limit,
		})
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  rate,
			Limit: limit,
		})
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      key,
		ErrorHandler: errorHandler,
	})
}

// RateLimiterMiddleware allow limit requests per client IP every rate.
// Counters live in redis when client is not nil so every instance share them.
func RateLimiterMiddleware(client redis.UniversalClient, rate time.Duration, limit uint) gin.HandlerFunc {
	return newRateLimiter(client, rate, limit, ipKey)
}

// UserRateLimiterMiddleware allow limit requests per signed-in user every rate.
// Mount it after RequireAuth.
func UserRateLimiterMiddleware(client redis.UniversalClient, rate time.Duration, limit uint) gin.HandlerFunc {
	return newRateLimiter(client, rate, limit, userKey)
}
