// Package source downloads datasets published over HTTP.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	acceptCSV      = "text/csv, text/plain;q=0.9, */*;q=0.5"
	maxAttempts    = 4
	defaultBackoff = 2 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client is a thin wrapper over http.Client that retries throttled requests.
// Use New to construct it.
type Client struct {
	c       *http.Client
	backoff time.Duration
}

func New(c *http.Client) *Client {
	if c == nil {
		c = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{c: c, backoff: defaultBackoff}
}

// Fetch downloads url and returns the body. 429 and 503 responses are retried,
// waiting for Retry-After when the server sends it.
func (sc *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", acceptCSV)
		resp, err := sc.c.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			wait := sc.retryAfter(resp.Header.Get("Retry-After"), attempt)
			_ = drainAndClose(resp.Body)
			if attempt >= maxAttempts {
				return nil, fmt.Errorf("fetch %s: still throttled after %d attempts", url, attempt)
			}
			slog.Warn("source.fetch.throttled", "url", url, "status", resp.StatusCode, "wait", wait, "attempt", attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %d %s", url, resp.StatusCode, string(body))
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}
}

func (sc *Client) retryAfter(header string, attempt int) time.Duration {
	if sec, err := strconv.Atoi(header); err == nil && sec >= 0 {
		return min(time.Duration(sec)*time.Second, maxBackoff)
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return min(d, maxBackoff)
		}
		return 0
	}
	return min(sc.backoff*time.Duration(attempt), maxBackoff)
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, rc)
	return rc.Close()
}
