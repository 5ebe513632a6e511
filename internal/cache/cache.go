// Package cache stores computed insights reports between requests.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tzofim/peula/internal/domain"
)

// InsightsCache keeps the latest insights report under a fingerprint of the
// training examples it was computed from.
type InsightsCache interface {
	// Get returns the cached report for key; ok is false on a miss.
	Get(ctx context.Context, key string) (report *domain.InsightsReport, ok bool, err error)
	Set(ctx context.Context, key string, report *domain.InsightsReport, ttl time.Duration) error
	Close() error
}

type memoryEntry struct {
	report    domain.InsightsReport
	expiresAt time.Time
}

// MemoryCache is a process-local InsightsCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.InsightsReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	r := e.report
	return &r, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, report *domain.InsightsReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{report: *report}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	// One live fingerprint at a time; older ones can never match again.
	c.entries = map[string]memoryEntry{key: e}
	return nil
}

func (c *MemoryCache) Close() error { return nil }
