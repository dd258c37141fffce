package ratelimit

import (
	"sync"
	"time"
)

// Config carries the two limiter settings the transport layer wires up:
// a strict cap on buy attempts and a looser cap on the rest of the API.
type Config struct {
	BuyLimit  int
	BuyWindow time.Duration
	APILimit  int
	APIWindow time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BuyLimit:  5,
		BuyWindow: time.Minute,
		APILimit:  60,
		APIWindow: time.Minute,
	}
}

type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is an in-memory sliding-window rate limiter keyed by an opaque
// client identifier (the transport uses the client IP).
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	limit   int
	window  time.Duration
}

type slidingWindow struct {
	timestamps []time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*slidingWindow),
		limit:   limit,
		window:  window,
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit for the current window.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	sw := l.windows[key]
	if sw == nil {
		sw = &slidingWindow{}
		l.windows[key] = sw
	}
	sw.cleanup(now, l.window)

	if len(sw.timestamps) >= l.limit {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   sw.timestamps[0].Add(l.window),
		}
	}

	sw.timestamps = append(sw.timestamps, now)
	return Result{
		Allowed:   true,
		Remaining: l.limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(l.window),
	}
}

// Reset clears the window for a key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

func (sw *slidingWindow) cleanup(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
