package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit is a fixed-window limiter keyed by the authenticated user (or
// the remote address for anonymous calls). A nil client or a non-positive
// limit turns it into a pass-through. Redis errors fail open.
func RateLimit(rdb redis.UniversalClient, prefix string, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if rdb == nil || limit <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			bucket := now.UnixNano() / int64(window)
			key := fmt.Sprintf("ratelimit:%s:%s:%d", prefix, rateKey(r), bucket)

			ctx := r.Context()
			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				logger.Warn("Rate limiter unavailable", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			count := incr.Val()
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				reset := time.Unix(0, (bucket+1)*int64(window))
				w.Header().Set("Retry-After", strconv.Itoa(int(reset.Sub(now).Seconds())+1))
				logger.Warn("Rate limit exceeded", zap.String("key", key), zap.Int64("count", count))
				utils.ResponseTooManyRequests(w, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	return "ip:" + r.RemoteAddr
}
