package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// an entry untouched for this long is dropped on the next sweep
	limiterIdleTTL    = 3 * time.Minute
	limiterSweepEvery = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool holds one token bucket per client IP. Idle entries are
// swept opportunistically so a scan across many source addresses cannot
// grow the map without bound.
type limiterPool struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	r         rate.Limit
	burst     int
	lastSweep time.Time
}

func newLimiterPool(r rate.Limit, burst int) *limiterPool {
	return &limiterPool{
		clients: make(map[string]*clientLimiter),
		r:       r,
		burst:   burst,
	}
}

// get returns the limiter for ip, creating it on first sight and marking
// it seen. At most once per sweep interval it also evicts idle entries.
func (p *limiterPool) get(ip string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= limiterSweepEvery {
		p.sweepLocked(now)
	}

	cl, ok := p.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(p.r, p.burst)}
		p.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func (p *limiterPool) sweepLocked(now time.Time) {
	for ip, cl := range p.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(p.clients, ip)
		}
	}
	p.lastSweep = now
}

// RateLimit applies a per-client-IP token bucket to the routes it wraps.
// Meant for the credential endpoints, where unbounded retries invite
// brute-forcing.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	pool := newLimiterPool(r, burst)

	return func(c *gin.Context) {
		if !pool.get(c.ClientIP(), time.Now()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, slow down."})
			c.Abort()
			return
		}

		c.Next()
	}
}
