// Package ratelimit implements a per-caller sliding-window request throttle.
//
// The limiter is an abuse dampener, not a security boundary: state is
// process-local and resets on restart. It runs before any identity or
// signing work so abusive traffic is rejected cheaply.
package ratelimit

import (
	"sync"
	"time"
)

// Default limiter settings.
const (
	DefaultWindow        = time.Minute
	DefaultMax           = 30
	DefaultSweepInterval = 5 * time.Minute
)

// Config holds limiter settings.
type Config struct {
	// Window is the trailing time window considered for each caller.
	Window time.Duration

	// Max is the number of requests allowed per caller within the window.
	Max int

	// SweepInterval is how often idle caller keys are evicted.
	// Zero disables the background sweep.
	SweepInterval time.Duration
}

// applyDefaults fills in default values for unset config fields.
func (c *Config) applyDefaults() {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Max <= 0 {
		c.Max = DefaultMax
	}
}

// Limiter tracks request timestamps per caller key and enforces a
// sliding-window limit. Safe for concurrent use.
type Limiter struct {
	hits   map[string][]time.Time
	cfg    Config
	now    func() time.Time
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects a clock, letting tests advance time deterministically.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter and, when a sweep interval is configured, starts the
// background eviction goroutine. Call Close to stop it.
func New(cfg Config, opts ...Option) *Limiter {
	cfg.applyDefaults()

	l := &Limiter{
		hits: make(map[string][]time.Time),
		cfg:  cfg,
		now:  time.Now,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if cfg.SweepInterval > 0 {
		go l.janitor()
	}

	return l
}

// Allow records a request for the caller key and reports whether it is
// within the limit. Timestamps older than the window are pruned lazily;
// a denied request is not recorded.
func (l *Limiter) Allow(callerKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.cfg.Window)

	recent := pruneBefore(l.hits[callerKey], cutoff)
	if len(recent) >= l.cfg.Max {
		l.hits[callerKey] = recent
		return false
	}

	l.hits[callerKey] = append(recent, now)
	return true
}

// Len returns the number of tracked caller keys. Intended for tests and
// introspection.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// Close stops the background sweep. Idempotent.
func (l *Limiter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)

	return nil
}

// janitor periodically evicts idle caller keys, bounding memory under a
// churn of distinct keys such as rotating source addresses.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweepChunkSize bounds how many keys are pruned under a single lock
// acquire, so a sweep over a large map interleaves with in-flight Allow
// calls instead of stalling them for the whole pass.
const sweepChunkSize = 64

// sweep drops caller keys whose timestamp lists are fully outside the window.
// The key set is snapshotted first; the lock is then re-acquired per chunk.
func (l *Limiter) sweep() {
	l.mu.Lock()
	keys := make([]string, 0, len(l.hits))
	for key := range l.hits {
		keys = append(keys, key)
	}
	l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.Window)
	for start := 0; start < len(keys); start += sweepChunkSize {
		end := min(start+sweepChunkSize, len(keys))
		l.sweepChunk(keys[start:end], cutoff)
	}
}

// sweepChunk prunes one bounded batch of keys. Keys recorded after the
// snapshot are untouched; they are picked up by the next pass.
func (l *Limiter) sweepChunk(keys []string, cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range keys {
		times, ok := l.hits[key]
		if !ok {
			continue
		}
		recent := pruneBefore(times, cutoff)
		if len(recent) == 0 {
			delete(l.hits, key)
		} else {
			l.hits[key] = recent
		}
	}
}

// pruneBefore returns the timestamps strictly after cutoff.
// The input slice is ordered, so the first retained index is a boundary.
func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(times) && !times[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return times
	}
	return append([]time.Time(nil), times[idx:]...)
}
