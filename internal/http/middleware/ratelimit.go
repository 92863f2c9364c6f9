package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"passball/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter - ограничение частоты по ключу в фиксированном окне
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter считает запросы в redis (INCR + EXPIRE на окно)
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "passball:ratelimit",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Truncate(l.window).Unix()
	k := fmt.Sprintf("%s:%s:%s", l.prefix, key, strconv.FormatInt(bucket, 10))

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		// redis недоступен - пропускаем запрос
		return true, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// MemoryLimiter - замена RedisLimiter для одного процесса
type MemoryLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	counts      map[string]int
	now         func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]int),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := l.now().Truncate(l.window)
	if !start.Equal(l.windowStart) {
		l.windowStart = start
		l.counts = make(map[string]int)
	}
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

// NewLimiter выбирает redis, если задан адрес, иначе память.
// limit <= 0 отключает ограничение (возвращает nil).
func NewLimiter(ctx context.Context, redisAddr, redisPassword string, redisDB, limit int) (Limiter, func()) {
	if limit <= 0 {
		return nil, func() {}
	}
	if redisAddr == "" {
		return NewMemoryLimiter(limit, time.Minute), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "addr", redisAddr, "error", err)
		_ = client.Close()
		return NewMemoryLimiter(limit, time.Minute), func() {}
	}
	logger.Info("redis rate limiter enabled", "addr", redisAddr, "limit_per_minute", limit)
	return NewRedisLimiter(client, limit, time.Minute), func() { _ = client.Close() }
}

// RateLimit - gin middleware по IP клиента. nil limiter пропускает все.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter error", "error", err)
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
