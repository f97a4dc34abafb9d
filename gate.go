package tweetlate

import (
	"context"
	"time"
)

// DefaultStaleThreshold is the staleness window applied when none is
// configured.
const DefaultStaleThreshold = 5 * time.Minute

// StalenessGate decides whether a subscription's cache is due for a
// refresh, and records refresh intent before any work starts. The
// recorded timestamp marks when a refresh was last initiated, not
// completed: a concurrent caller observing the fresh stamp skips its
// own refresh. The mechanism is advisory, not a lock, though store
// implementations narrow the check-then-stamp race to a single
// conditional write where they can.
type StalenessGate struct {
	store     CacheStore
	threshold time.Duration
	now       func() time.Time
}

// NewStalenessGate creates a gate over store with the given staleness
// window. A zero or negative threshold falls back to
// DefaultStaleThreshold.
func NewStalenessGate(store CacheStore, threshold time.Duration) *StalenessGate {
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}
	return &StalenessGate{
		store:     store,
		threshold: threshold,
		now:       time.Now,
	}
}

// WithClock replaces the gate's time source. Tests use this to pin
// "now".
func (g *StalenessGate) WithClock(now func() time.Time) *StalenessGate {
	g.now = now
	return g
}

// Threshold returns the configured staleness window.
func (g *StalenessGate) Threshold() time.Duration {
	return g.threshold
}

// ShouldRefresh reports whether the subscription's data is stale:
// now - lastRefresh >= threshold. An absent timestamp counts as
// arbitrarily old.
func (g *StalenessGate) ShouldRefresh(ctx context.Context, sub Subscription) (bool, error) {
	last, err := g.store.GetTimestamp(ctx, RefreshKey(sub))
	if err != nil {
		return false, err
	}
	return g.now().Sub(last) >= g.threshold, nil
}

// Claim stamps refresh intent if the subscription is stale, returning
// true when the caller should run the pipeline. The stamp happens before
// any fetch or translation work so that concurrent callers observe
// fresh data and back off.
func (g *StalenessGate) Claim(ctx context.Context, sub Subscription) (bool, error) {
	return g.store.ClaimRefresh(ctx, RefreshKey(sub), g.now(), g.threshold)
}
