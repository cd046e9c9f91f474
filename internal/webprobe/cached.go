package webprobe

import (
	"context"
	"time"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// CachedProber wraps another prober with a durable outcome cache so repeated
// batch runs do not re-probe the same URLs within the TTL.
type CachedProber struct {
	inner contract.Prober
	store contract.CacheStore
	ttl   time.Duration
}

var _ contract.Prober = &CachedProber{} // Compile-time check

// NewCached wraps inner with the given cache store and TTL.
func NewCached(inner contract.Prober, store contract.CacheStore, ttl time.Duration) *CachedProber {
	return &CachedProber{inner: inner, store: store, ttl: ttl}
}

// Probe serves a fresh cached outcome when available; otherwise delegates and
// records the result. Cache failures degrade to a direct probe, never to an
// evaluation error.
func (p *CachedProber) Probe(ctx context.Context, rawURL string) schema.ProbeOutcome {
	if outcome, ts, ok, err := p.store.Get(rawURL); err == nil && ok {
		if time.Since(time.Unix(ts, 0)) < p.ttl {
			return outcome
		}
	}

	outcome := p.inner.Probe(ctx, rawURL)
	if err := p.store.Set(rawURL, outcome, time.Now().Unix()); err != nil {
		contract.LogWarn("Probe cache write failed", err)
	}
	return outcome
}

// OfflineProber classifies every well-formed URL as inaccessible without
// network I/O. Used for offline runs.
type OfflineProber struct{}

var _ contract.Prober = OfflineProber{} // Compile-time check

// Probe validates the URL shape only.
func (OfflineProber) Probe(_ context.Context, rawURL string) schema.ProbeOutcome {
	if !IsValidURLFormat(rawURL) {
		msg := InvalidURLError
		return schema.ProbeOutcome{IsAccessible: false, Error: &msg}
	}
	msg := "network probes disabled"
	return schema.ProbeOutcome{IsAccessible: false, Error: &msg}
}
