package webprobe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeg-upm/metacheck/schema"
)

func TestIsValidURLFormat(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.org", true},
		{"http://example.org/path?q=1", true},
		{"ftp://example.org/file", true}, // scheme and host are enough
		{"example.org", false},           // no scheme
		{"https://", false},              // no host
		{"not a url", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURLFormat(tt.url))
		})
	}
}

func TestProbeStatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		accessible bool
	}{
		{"ok", http.StatusOK, true},
		{"created", http.StatusCreated, true},
		{"permanent redirect", http.StatusPermanentRedirect, true},
		{"not found", http.StatusNotFound, false},
		{"forbidden", http.StatusForbidden, false},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := srv.Client()
			client.CheckRedirect = func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			}
			prober := New(5 * time.Second)
			prober.client = client

			outcome := prober.Probe(context.Background(), srv.URL)
			assert.Equal(t, tt.accessible, outcome.IsAccessible)
			require.NotNil(t, outcome.StatusCode)
			assert.Equal(t, tt.status, *outcome.StatusCode)
			assert.Nil(t, outcome.Error)
		})
	}
}

func TestProbeHeadFallsBackToGet(t *testing.T) {
	var gotGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			gotGet = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	prober := New(5 * time.Second)
	outcome := prober.Probe(context.Background(), srv.URL)
	assert.True(t, gotGet, "expected GET fallback after 405 on HEAD")
	assert.True(t, outcome.IsAccessible)
}

func TestProbeInvalidURL(t *testing.T) {
	prober := New(5 * time.Second)
	outcome := prober.Probe(context.Background(), "not a url")
	assert.False(t, outcome.IsAccessible)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, InvalidURLError, *outcome.Error)
	assert.Nil(t, outcome.StatusCode)
}

func TestProbeConnectionFailure(t *testing.T) {
	// Grab a port that nothing listens on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	deadURL := srv.URL
	srv.Close()

	prober := New(2 * time.Second)
	outcome := prober.Probe(context.Background(), deadURL)
	assert.False(t, outcome.IsAccessible)
	assert.Nil(t, outcome.StatusCode)
	require.NotNil(t, outcome.Error)
	assert.NotEmpty(t, *outcome.Error)
}

func TestOfflineProber(t *testing.T) {
	prober := OfflineProber{}

	t.Run("well-formed url is inaccessible without io", func(t *testing.T) {
		outcome := prober.Probe(context.Background(), "https://example.org")
		assert.False(t, outcome.IsAccessible)
		require.NotNil(t, outcome.Error)
		assert.Equal(t, "network probes disabled", *outcome.Error)
	})

	t.Run("malformed url reports the format error", func(t *testing.T) {
		outcome := prober.Probe(context.Background(), "nope")
		assert.False(t, outcome.IsAccessible)
		require.NotNil(t, outcome.Error)
		assert.Equal(t, InvalidURLError, *outcome.Error)
	})
}

// memoryCacheStore is a CacheStore backed by a map for testing the cached
// prober without a database.
type memoryCacheStore struct {
	sync.Mutex
	outcomes   map[string]schema.ProbeOutcome
	timestamps map[string]int64
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{
		outcomes:   map[string]schema.ProbeOutcome{},
		timestamps: map[string]int64{},
	}
}

func (s *memoryCacheStore) Get(url string) (schema.ProbeOutcome, int64, bool, error) {
	s.Lock()
	defer s.Unlock()
	outcome, ok := s.outcomes[url]
	return outcome, s.timestamps[url], ok, nil
}

func (s *memoryCacheStore) Set(url string, outcome schema.ProbeOutcome, timestamp int64) error {
	s.Lock()
	defer s.Unlock()
	s.outcomes[url] = outcome
	s.timestamps[url] = timestamp
	return nil
}

func (s *memoryCacheStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{}, nil
}

func (s *memoryCacheStore) Close() error { return nil }

// countingProber counts probe invocations.
type countingProber struct {
	calls int
}

func (p *countingProber) Probe(context.Context, string) schema.ProbeOutcome {
	p.calls++
	return schema.ProbeOutcome{IsAccessible: true}
}

func TestCachedProber(t *testing.T) {
	t.Run("fresh entries served from cache", func(t *testing.T) {
		inner := &countingProber{}
		store := newMemoryCacheStore()
		prober := NewCached(inner, store, time.Hour)

		first := prober.Probe(context.Background(), "https://example.org")
		second := prober.Probe(context.Background(), "https://example.org")
		assert.True(t, first.IsAccessible)
		assert.True(t, second.IsAccessible)
		assert.Equal(t, 1, inner.calls, "second probe should hit the cache")
	})

	t.Run("expired entries are re-probed", func(t *testing.T) {
		inner := &countingProber{}
		store := newMemoryCacheStore()
		// Seed an entry that is already past the TTL
		stale := schema.ProbeOutcome{IsAccessible: false}
		_ = store.Set("https://example.org", stale, time.Now().Add(-2*time.Hour).Unix())

		prober := NewCached(inner, store, time.Hour)
		outcome := prober.Probe(context.Background(), "https://example.org")
		assert.True(t, outcome.IsAccessible, "stale cache entry should not be served")
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("probe result is written back", func(t *testing.T) {
		inner := &countingProber{}
		store := newMemoryCacheStore()
		prober := NewCached(inner, store, time.Hour)

		prober.Probe(context.Background(), "https://example.org")
		_, _, ok, err := store.Get("https://example.org")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
