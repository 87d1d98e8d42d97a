package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed one-minute window shared by every replica.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, perMinute int, prefix string) *RedisLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &RedisLimiter{rdb: rdb, limit: int64(perMinute), prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().Unix() / 60
	k := fmt.Sprintf("rl:%s:%s:%d", l.prefix, key, window)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= l.limit, nil
}

const (
	limiterIdle    = 5 * time.Minute
	limiterMaxKeys = 10000
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps a token bucket per key in process. Buckets idle for
// longer than limiterIdle are swept, since a refilled bucket is the same as
// a new one.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMin    int
	maxKeys   int
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		perMin:  perMinute,
		maxKeys: limiterMaxKeys,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdle || len(l.buckets) >= l.maxKeys {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			// Every bucket is in use; refuse new keys rather than grow.
			return false, nil
		}
		b = &bucket{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1), nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) >= limiterIdle {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

// RateLimit keys on route and client IP, so each limited endpoint has its
// own budget. Limiter errors fail open.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), c.FullPath()+"|"+ip)
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Try again later.")
			return
		}
		c.Next()
	}
}
