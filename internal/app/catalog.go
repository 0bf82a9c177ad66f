package app

import (
	"context"
	"sync"
	"time"

	"ushuaia_experiences/internal/adapters/observability"
	"ushuaia_experiences/internal/domain"
)

// slot is the single cache entry: the whole normalized result set captured
// at one instant. It is replaced wholesale, never mutated.
type slot struct {
	ts    time.Time
	items []domain.Experience
}

func (s *slot) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.ts) >= ttl
}

// CatalogService wraps fetch+normalize with a single-slot TTL memo.
// The mutex only guards the slot pointer; the fetch itself runs unlocked,
// so two requests racing past expiry may both refresh (an accepted
// redundancy for idempotent reads).
type CatalogService struct {
	source domain.RowSource
	ttl    time.Duration

	mu   sync.RWMutex
	slot *slot
}

func NewCatalogService(src domain.RowSource, ttl time.Duration) *CatalogService {
	return &CatalogService{source: src, ttl: ttl}
}

// List returns the active experiences, serving the cached set while it is
// fresh. A fetch failure propagates and leaves any prior slot untouched;
// stale data is never substituted for an error.
func (s *CatalogService) List(ctx context.Context) ([]domain.Experience, bool, error) {
	s.mu.RLock()
	cur := s.slot
	s.mu.RUnlock()

	if cur != nil && !cur.expired(time.Now(), s.ttl) {
		observability.ObserveCache("catalog", "hit")
		return cur.items, true, nil
	}
	observability.ObserveCache("catalog", "miss")

	headers, rows, err := s.source.ReadRows(ctx)
	if err != nil {
		return nil, false, err
	}
	items := Normalize(headers, rows)

	s.mu.Lock()
	s.slot = &slot{ts: time.Now(), items: items}
	s.mu.Unlock()
	observability.ObserveCache("catalog", "refresh")

	return items, false, nil
}
