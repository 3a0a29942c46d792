package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lessonplan/pkg/apperr"
)

// Fetcher downloads transcripts from an allow-list of hosts.
type Fetcher struct {
	client   *http.Client
	allow    map[string]bool
	maxBytes int64
}

func NewFetcher(allowed []string, maxBytes int64) *Fetcher {
	allow := map[string]bool{}
	for _, h := range allowed {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	f := &Fetcher{allow: allow, maxBytes: maxBytes}
	f.client = &http.Client{Timeout: 20 * time.Second, CheckRedirect: f.checkRedirect}
	return f
}

// every hop must stay inside the allow-list
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 5 {
		return apperr.Wrap(apperr.ErrValidation, "fetch", "too many redirects", nil)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return apperr.Wrap(apperr.ErrValidation, "fetch", "bad redirect url", nil)
	}
	if !f.allowed(req.URL.Hostname()) {
		return apperr.Wrap(apperr.ErrValidation, "fetch", "redirect to domain not allowed: "+req.URL.Hostname(), nil)
	}
	return nil
}

func (f *Fetcher) allowed(host string) bool {
	host = strings.ToLower(host)
	for h := range f.allow {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Fetch returns the readable text behind rawURL. HTML pages go through
// FromHTML, text/plain is returned as is.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", apperr.Wrap(apperr.ErrValidation, "fetch", "bad url", err)
	}
	if !f.allowed(u.Hostname()) {
		return "", apperr.Wrap(apperr.ErrValidation, "fetch", "domain not allowed: "+u.Hostname(), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Hostname(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("fetch %s: status %d", u.Hostname(), resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return "", apperr.Wrap(apperr.ErrValidation, "fetch", "page too large", nil)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > f.maxBytes {
		return "", apperr.Wrap(apperr.ErrValidation, "fetch", "page too large", nil)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		return strings.TrimSpace(string(b)), nil
	case strings.Contains(ct, "text/html"):
		text, _, err := FromHTML(bytes.NewReader(b))
		return text, err
	default:
		return "", apperr.Wrap(apperr.ErrValidation, "fetch", "unsupported content-type: "+ct, nil)
	}
}
