// Package limiter paces outbound probes so remote hosts are not
// hammered: a global bucket bounds total request rate, per-host buckets
// bound the rate against any single site.
package limiter

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// tokenBucket is a simple rate limiter using a buffered channel.
type tokenBucket struct {
	ch chan struct{}
}

func newTokenBucket(rate int) *tokenBucket {
	tb := &tokenBucket{
		ch: make(chan struct{}, rate),
	}

	// Start full so the first burst is not delayed, then refill every second.
	for i := 0; i < rate; i++ {
		tb.ch <- struct{}{}
	}

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for range ticker.C {
			for i := 0; i < rate; i++ {
				select {
				case tb.ch <- struct{}{}:
				default:
					// bucket full
				}
			}
		}
	}()

	return tb
}

func (t *tokenBucket) Take(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ch:
		return nil
	}
}

// PerHost combines the global bucket with lazily created host buckets.
type PerHost struct {
	global *tokenBucket

	mu   sync.Mutex
	rate int
	host map[string]*tokenBucket
}

func New(globalRate, perHostRate int) *PerHost {
	if globalRate <= 0 {
		globalRate = 20
	}
	if perHostRate <= 0 {
		perHostRate = 4
	}
	return &PerHost{
		global: newTokenBucket(globalRate),
		rate:   perHostRate,
		host:   make(map[string]*tokenBucket),
	}
}

func (h *PerHost) Take(ctx context.Context, rawURL string) error {
	if err := h.global.Take(ctx); err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil // invalid URL fails later at the probe itself
	}
	host := u.Hostname()
	if host == "" {
		return nil
	}

	h.mu.Lock()
	tb, ok := h.host[host]
	if !ok {
		tb = newTokenBucket(h.rate)
		h.host[host] = tb
	}
	h.mu.Unlock()

	return tb.Take(ctx)
}
