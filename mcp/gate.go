package mcp

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate limiting defaults for the stdio tools.
const (
	RateLimitCalls  = 100
	RateLimitWindow = time.Minute
)

// ToolGate provides per-tool rate limiting using token buckets. Each
// tool gets its own limiter, so exhausting one tool's budget leaves the
// others callable.
type ToolGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewToolGate creates a ToolGate allowing calls invocations per window
// for each tool. Non-positive values select the defaults.
func NewToolGate(calls int, window time.Duration) *ToolGate {
	if calls <= 0 {
		calls = RateLimitCalls
	}
	if window <= 0 {
		window = RateLimitWindow
	}
	return &ToolGate{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(calls) / window.Seconds()),
		burst:    calls,
	}
}

// Allow reports whether one more invocation of tool may proceed now.
func (g *ToolGate) Allow(tool string) bool {
	g.mu.Lock()
	limiter, ok := g.limiters[tool]
	if !ok {
		limiter = rate.NewLimiter(g.limit, g.burst)
		g.limiters[tool] = limiter
	}
	g.mu.Unlock()

	return limiter.Allow()
}
