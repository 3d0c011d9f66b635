package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter - счётчик попыток в фиксированном окне
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter хранит окна в памяти процесса. Подходит для одного инстанса и тестов.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		l.buckets[key] = b
		l.evict(now)
	}
	b.count++
	return b.count <= limit
}

// evict убирает истёкшие окна, чтобы карта не росла бесконечно
func (l *MemoryLimiter) evict(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for k, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}

// INCR + PEXPIRE на первом обращении: окно начинается с первой попытки
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter делит счётчики между инстансами. При недоступности Redis запрос пропускается.
type RedisLimiter struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, timeout: 250 * time.Millisecond}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	count, err := rateLimitScript.Run(ctx, l.client, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		logger.CtxWarn(ctx, "Rate limiter unavailable, request allowed", "key", key, "error", err)
		return true
	}
	return count <= int64(limit)
}

// NewRedisClient разбирает redis:// URL и проверяет соединение
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RateLimit ограничивает число запросов с одного IP в окне. Ключ: ratelimit:<prefix>:<ip>.
func RateLimit(limiter Limiter, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := "ratelimit:" + prefix + ":" + c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key, limit, window) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			apperrors.AbortWithError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
