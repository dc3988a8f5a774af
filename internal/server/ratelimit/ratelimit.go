// Package ratelimit limits request rates per client and endpoint using token buckets.
package ratelimit

import (
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// defaultMaxBuckets bounds how many client+endpoint buckets are tracked at once
const defaultMaxBuckets = 10000

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	MaxBuckets      int
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Request describes the request being limited. Pattern is the path part of
// the route the request matched, such as "/participants/{id}/results", or
// empty when no route matched.
type Request struct {
	Method  string
	Path    string
	Pattern string
}

// unmatchedRoute names the bucket shared by requests that matched no route
const unmatchedRoute = "(unmatched)"

// endpoint resolves the limit for req and the bucket name it draws from.
// Configured endpoints match exactly or, for paths ending in "/", by prefix,
// and every request under a prefix shares one bucket. Other requests fall
// back to the default limit with one bucket per route pattern, so path
// parameters never mint new buckets. A nil config means unlimited.
func (c *Config) endpoint(req Request) (*EndpointConfig, string) {
	if req.Method == http.MethodGet && (req.Path == "/health" || req.Path == "/metrics") {
		return nil, ""
	}

	var prefix *EndpointConfig
	for i := range c.EndpointConfigs {
		ec := &c.EndpointConfigs[i]
		if ec.Method != req.Method {
			continue
		}
		if ec.Path == req.Path {
			return ec, ec.Method + " " + ec.Path
		}
		if prefix == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(req.Path, ec.Path) {
			prefix = ec
		}
	}
	if prefix != nil {
		return prefix, prefix.Method + " " + prefix.Path
	}

	route := req.Pattern
	if route == "" {
		route = unmatchedRoute
	}
	return &EndpointConfig{
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}, req.Method + " " + route
}

// Limiter manages rate limiting for multiple clients. Buckets are kept in an
// LRU cache so idle clients are evicted without a cleanup goroutine.
type Limiter struct {
	config  *Config
	buckets *lru.Cache[string, *rate.Limiter]
	now     func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			Whitelist:     make(map[string]bool),
			Blacklist:     make(map[string]bool),
		}
	}
	size := config.MaxBuckets
	if size <= 0 {
		size = defaultMaxBuckets
	}
	buckets, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		// Only returned for a non-positive size
		panic(err)
	}
	return &Limiter{config: config, buckets: buckets, now: time.Now}
}

// Allow checks if a request from the given client is allowed.
func (l *Limiter) Allow(clientID string, req Request) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig, route := l.config.endpoint(req)
	if endpointConfig == nil || endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	bucket := l.bucket(clientID+":"+route, endpointConfig)

	now := l.now()
	allowed := bucket.AllowN(now, 1)
	tokens := bucket.TokensAt(now)
	burst := bucket.Burst()

	info := Info{
		Allowed:   allowed,
		Limit:     endpointConfig.Limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(refillTime(float64(burst)-tokens, bucket.Limit())),
	}
	if !allowed {
		info.RetryAfter = refillTime(1-tokens, bucket.Limit())
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, cfg *EndpointConfig) *rate.Limiter {
	if bucket, ok := l.buckets.Get(key); ok {
		return bucket
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Limit
	}
	bucket := rate.NewLimiter(rate.Every(cfg.Window/time.Duration(cfg.Limit)), burst)
	// Another request may have raced us here; keep whichever landed first
	if existing, ok, _ := l.buckets.PeekOrAdd(key, bucket); ok {
		return existing
	}
	return bucket
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	return l.buckets.Len()
}

// refillTime is how long the bucket needs to gain the given number of tokens
func refillTime(tokens float64, limit rate.Limit) time.Duration {
	if tokens <= 0 || limit <= 0 {
		return 0
	}
	return time.Duration(tokens / float64(limit) * float64(time.Second))
}
