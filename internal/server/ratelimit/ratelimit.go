// Package ratelimit throttles the API's three route tiers with per-client
// token buckets: PDF generation (expensive, tight hourly budget), auth
// flows (credential-stuffing surface), and document sync traffic.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Tier classifies a request by the cost class of its route.
type Tier int

const (
	// TierUnlimited exempts a route from limiting entirely (health checks).
	TierUnlimited Tier = iota
	// TierGenerate covers POST /resume/optimize.
	TierGenerate
	// TierAuth covers POST /user (signup, login, oauth).
	TierAuth
	// TierSync covers document saves and reauth polling.
	TierSync
	// TierDefault covers everything else.
	TierDefault
)

var tierNames = map[Tier]string{
	TierUnlimited: "unlimited",
	TierGenerate:  "generate",
	TierAuth:      "auth",
	TierSync:      "sync",
	TierDefault:   "default",
}

func (t Tier) String() string { return tierNames[t] }

// TierFor maps a request to its tier. Unknown routes fall into
// TierDefault rather than passing unthrottled.
func TierFor(path, method string) Tier {
	switch {
	case path == "/health" && method == "GET":
		return TierUnlimited
	case strings.HasPrefix(path, "/resume/optimize") && method == "POST":
		return TierGenerate
	case path == "/user" && method == "POST":
		return TierAuth
	case path == "/resume" && method == "POST",
		path == "/user" && method == "GET",
		path == "/user/me" && method == "GET":
		return TierSync
	default:
		return TierDefault
	}
}

// TierLimit is one tier's budget: Limit requests per Window, with Burst
// available immediately.
type TierLimit struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// Info reports the limiter's view of one decision, echoed into the
// X-RateLimit-* headers and the 429 envelope.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is one client+tier token bucket. The limiter's clock is passed
// in on every touch; the bucket itself holds no lock, the Limiter does.
type bucket struct {
	capacity float64
	refill   float64 // tokens per second
	tokens   float64
	last     time.Time
}

func (b *bucket) advance(now time.Time) {
	b.tokens += now.Sub(b.last).Seconds() * b.refill
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now
}

// take consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.advance(now)
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// untilNext reports how long until one token is available.
func (b *bucket) untilNext(now time.Time) time.Duration {
	b.advance(now)
	if b.tokens >= 1.0 {
		return 0
	}
	return time.Duration((1.0 - b.tokens) / b.refill * float64(time.Second))
}

// resetAt reports when the bucket refills completely.
func (b *bucket) resetAt(now time.Time) time.Time {
	b.advance(now)
	if b.tokens >= b.capacity {
		return now
	}
	return now.Add(time.Duration((b.capacity - b.tokens) / b.refill * float64(time.Second)))
}

// Limiter applies per-tier budgets per client.
type Limiter struct {
	config *Config

	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time

	now func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter from the given configuration; nil gets the
// defaults from DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:   config,
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow decides one request. clientID is the caller's IP; path and method
// select the tier.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	tier := TierFor(path, method)
	if tier == TierUnlimited {
		return true, Info{Allowed: true}
	}
	limit, ok := l.config.Tiers[tier]
	if !ok || limit.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + ":" + tier.String()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[key]
	if !exists {
		burst := limit.Burst
		if burst <= 0 {
			burst = limit.Limit
		}
		b = &bucket{
			capacity: float64(burst),
			refill:   float64(limit.Limit) / limit.Window.Seconds(),
			tokens:   float64(burst),
			last:     now,
		}
		l.buckets[key] = b
	}
	l.lastSeen[key] = now

	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     limit.Limit,
		Remaining: int(b.tokens),
		ResetTime: b.resetAt(now),
	}
	if !allowed {
		info.RetryAfter = b.untilNext(now)
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropIdle(l.config.IdleTTL)
		case <-l.cleanupStop:
			return
		}
	}
}

// dropIdle removes buckets not touched within ttl.
func (l *Limiter) dropIdle(ttl time.Duration) {
	cutoff := l.now().Add(-ttl)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastSeen, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
