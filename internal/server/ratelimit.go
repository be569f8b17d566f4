package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	clientIdleTimeout = 10 * time.Minute
	maxTrackedClients = 10_000
)

// RateLimitConfig bounds API requests per client address.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// Enabled reports whether requests are limited at all.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu         sync.Mutex
	limit      rate.Limit
	burst      int
	maxClients int
	clients    map[string]*clientLimiter
}

func newClientLimiters(cfg RateLimitConfig) *clientLimiters {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiters{
		limit:      rate.Limit(cfg.RequestsPerSecond),
		burst:      burst,
		maxClients: maxTrackedClients,
		clients:    make(map[string]*clientLimiter),
	}
}

func (c *clientLimiters) allow(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	client, ok := c.clients[key]
	if !ok {
		if len(c.clients) >= c.maxClients {
			c.pruneLocked(now)
		}
		if len(c.clients) >= c.maxClients {
			c.evictOldestLocked()
		}
		client = &clientLimiter{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

func (c *clientLimiters) pruneLocked(now time.Time) {
	for key, client := range c.clients {
		if now.Sub(client.lastSeen) > clientIdleTimeout {
			delete(c.clients, key)
		}
	}
}

// evictOldestLocked drops the least recently seen client so the map never
// exceeds maxClients.
func (c *clientLimiters) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, client := range c.clients {
		if !found || client.lastSeen.Before(oldest) {
			oldestKey, oldest, found = key, client.lastSeen, true
		}
	}
	if found {
		delete(c.clients, oldestKey)
	}
}

// withRateLimit rejects /api/ requests beyond the per-client rate with 429.
// Static assets and /metrics are not limited.
func withRateLimit(logger *zap.Logger, cfg RateLimitConfig, next http.Handler) http.Handler {
	if !cfg.Enabled() {
		return next
	}
	limiters := newClientLimiters(cfg)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		client := clientAddress(r)
		if !limiters.allow(client, time.Now()) {
			logger.Warn("rate limit exceeded",
				zap.String("op", "server.withRateLimit"),
				zap.String("client", client),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
