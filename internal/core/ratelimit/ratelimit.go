// Package ratelimit provides a sliding-window request limiter keyed by an
// opaque caller identity. Each logical rate-limit domain (general operations,
// search operations) owns its own Limiter instance; counters are never shared
package ratelimit

import (
	"context"
	"sync"
	"time"

	"gatehouse/internal/platform/logger"
)

// Config bounds one rate-limit domain
type Config struct {
	// Max is the number of requests admitted per identity per window
	Max int
	// Window is the sliding window length
	Window time.Duration
}

// window is the per-identity record. stamps only ever holds instants within
// [now-Window, now] after a check or sweep
type window struct {
	stamps   []time.Time
	lastSeen time.Time
}

// Limiter owns the identity -> window map exclusively. All access goes
// through Admit/Count/Sweep under one mutex so concurrent admit and sweep
// calls serialize per instance
type Limiter struct {
	cfg Config
	log logger.Logger

	mu      sync.Mutex
	windows map[string]*window

	now func() time.Time // seam for tests
}

// New constructs a Limiter for one domain
func New(name string, cfg Config) *Limiter {
	if cfg.Max <= 0 {
		panic("ratelimit: Max must be positive")
	}
	if cfg.Window <= 0 {
		panic("ratelimit: Window must be positive")
	}
	return &Limiter{
		cfg:     cfg,
		log:     *logger.Named("ratelimit." + name),
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Admit reports whether the identity may proceed. On acceptance the current
// instant is recorded; on rejection nothing is mutated beyond pruning of
// expired stamps
func (l *Limiter) Admit(identity string) bool {
	now := l.now()
	cut := now.Add(-l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[identity]
	if w == nil {
		w = &window{}
		l.windows[identity] = w
	}
	w.stamps = prune(w.stamps, cut)
	w.lastSeen = now

	if len(w.stamps) >= l.cfg.Max {
		l.log.Warn().
			Str("identity", identity).
			Int("in_window", len(w.stamps)).
			Int("max", l.cfg.Max).
			Dur("window", l.cfg.Window).
			Msg("rate limit exceeded")
		return false
	}

	w.stamps = append(w.stamps, now)
	return true
}

// Count returns the identity's in-window request count without mutating state
func (l *Limiter) Count(identity string) int {
	cut := l.now().Add(-l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[identity]
	if w == nil {
		return 0
	}
	n := 0
	for _, s := range w.stamps {
		if s.After(cut) {
			n++
		}
	}
	return n
}

// Sweep drops identities whose last request is older than twice the window,
// bounding the map regardless of how many distinct callers appear
func (l *Limiter) Sweep() {
	cut := l.now().Add(-2 * l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, w := range l.windows {
		if w.lastSeen.Before(cut) {
			delete(l.windows, id)
		}
	}
}

// Run sweeps on a recurring schedule, independent of request traffic,
// until ctx is done. Call in a goroutine from main
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.cfg.Window
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// Size returns the number of tracked identities (mostly for tests and meta)
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// prune drops stamps at or before cut, keeping order
func prune(stamps []time.Time, cut time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cut) {
		i++
	}
	if i == 0 {
		return stamps
	}
	return append(stamps[:0], stamps[i:]...)
}
