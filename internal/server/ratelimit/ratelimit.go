// Package ratelimit provides per-client request throttling using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket refills continuously at rate tokens per second up to capacity
type bucket struct {
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.lastRefill = now
}

// take consumes one token when available
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastSeen = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// fullAt is when the bucket will be back at capacity
func (b *bucket) fullAt(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 || b.rate <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

// nextTokenAt is when at least one token will be available
func (b *bucket) nextTokenAt(now time.Time) time.Time {
	if b.tokens >= 1 || b.rate <= 0 {
		return now
	}
	return now.Add(time.Duration((1 - b.tokens) / b.rate * float64(time.Second)))
}

// Info describes the limit applied to one request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks a bucket per client, path and method
type Limiter struct {
	config  Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter. A nil config uses DefaultConfig.
// When cleanup is enabled a goroutine evicts idle buckets until Stop is called.
func NewLimiter(config *Config) *Limiter {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow records a request from clientID to path with method and reports whether it may proceed
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := l.ruleFor(path, method)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + method + " " + rule.key(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		window := rule.Window
		if window <= 0 {
			window = time.Minute
		}
		b = newBucket(rule.capacity(), float64(rule.Limit)/window.Seconds(), now)
		l.buckets[key] = b
	}

	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(b.tokens),
		ResetTime: b.fullAt(now),
	}
	if !allowed {
		info.RetryAfter = b.nextTokenAt(now).Sub(now)
	}
	return allowed, info
}

func (l *Limiter) ruleFor(path, method string) EndpointConfig {
	if rule := MatchEndpoint(path, method, l.config.EndpointConfigs); rule != nil {
		return *rule
	}
	return EndpointConfig{
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
	}
}

// Evict removes buckets idle for longer than the configured TTL and returns how many were removed
func (l *Limiter) Evict() int {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Evict()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
