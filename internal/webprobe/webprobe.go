// Package webprobe classifies URL reachability with single-shot,
// timeout-bounded probes. The classification table here is the single source
// of truth for every rule that checks URL liveness.
package webprobe

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

const userAgent = "metacheck/1.0 (metadata quality checker)"

// InvalidURLError is the fixed error string reported for malformed URLs.
const InvalidURLError = "Invalid URL format"

// WebProber issues HEAD probes with a GET fallback when the far end rejects
// HEAD. One unreachable host can never stall a batch past the timeout.
type WebProber struct {
	client  *http.Client
	timeout time.Duration
}

var _ contract.Prober = &WebProber{} // Compile-time check

// New returns a prober bounded by the given timeout per probe.
func New(timeout time.Duration) *WebProber {
	return &WebProber{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// IsValidURLFormat reports whether the string parses as a URL with a scheme
// and a non-empty host-like component. No network I/O.
func IsValidURLFormat(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Probe validates the URL shape, then issues a HEAD request, falling back to
// GET on 405. 2xx/3xx classify as accessible; 4xx/5xx as inaccessible with
// the status recorded; any network-level failure as inaccessible with the
// error description preserved and no status code.
func (p *WebProber) Probe(ctx context.Context, rawURL string) schema.ProbeOutcome {
	rawURL = strings.TrimSpace(rawURL)
	if !IsValidURLFormat(rawURL) {
		msg := InvalidURLError
		return schema.ProbeOutcome{IsAccessible: false, Error: &msg}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.request(ctx, http.MethodHead, rawURL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = p.request(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		msg := err.Error()
		return schema.ProbeOutcome{IsAccessible: false, Error: &msg}
	}

	return schema.ProbeOutcome{
		IsAccessible: status >= 200 && status < 400,
		StatusCode:   &status,
	}
}

func (p *WebProber) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, nil
}
