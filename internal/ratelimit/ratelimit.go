package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// PerClientLimiter manages rate limiters per client.
type PerClientLimiter struct {
	limiters map[string]*clientLimiter
	mu       sync.RWMutex
	rps      float64 // requests per second per client
	burst    int
	now      func() time.Time
}

// NewPerClientLimiter creates a new per-client rate limiter.
func NewPerClientLimiter(rps float64) *PerClientLimiter {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &PerClientLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow checks if a request from a client is allowed.
func (l *PerClientLimiter) Allow(clientID string) bool {
	l.mu.RLock()
	cl, exists := l.limiters[clientID]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		cl, exists = l.limiters[clientID]
		if !exists {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
			l.limiters[clientID] = cl
		}
		l.mu.Unlock()
	}

	now := l.now()
	cl.lastSeen.Store(now.UnixNano())
	return cl.limiter.AllowN(now, 1)
}

// Prune drops limiters for clients not seen within idle and returns how many
// were dropped. A dropped client starts again with a full burst.
func (l *PerClientLimiter) Prune(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()

	l.mu.Lock()
	defer l.mu.Unlock()

	pruned := 0
	for id, cl := range l.limiters {
		if cl.lastSeen.Load() < cutoff {
			delete(l.limiters, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of tracked clients.
func (l *PerClientLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}
