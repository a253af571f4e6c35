package engine

import (
	"context"
	"fmt"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/time/rate"
)

// Re-export stealth types and functions for engine consumers.
type BrowserClient = stealth.BrowserClient

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }

// StealthTimeout converts a fetch timeout into the whole seconds the stealth
// client takes, rounding up. Zero or negative falls back to 15s.
func StealthTimeout(d time.Duration) int {
	if d <= 0 {
		return 15
	}
	return int((d + time.Second - 1) / time.Second)
}

// BrowserTransport sends requests through go-stealth's Chrome-fingerprinted
// client, which rotates proxies when built with a pool.
type BrowserTransport struct {
	bc      *BrowserClient
	limiter *rate.Limiter
}

func NewBrowserTransport(bc *BrowserClient, rps float64) *BrowserTransport {
	return &BrowserTransport{bc: bc, limiter: newLimiter(rps)}
}

// Get issues a GET. The stealth client has no context support, so ctx is only
// checked before the request starts; its own timeout bounds the call.
func (t *BrowserTransport) Get(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	metrics.FetchRequests.Add(1)

	h := ChromeHeaders()
	for k, v := range headers {
		if v != "" {
			h[k] = v
		}
	}

	data, _, status, err := t.bc.Do("GET", url, h, nil)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return status, nil, fmt.Errorf("stealth get: %w", err)
	}
	if len(data) > maxBodyBytes {
		metrics.FetchErrors.Add(1)
		return status, nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxBodyBytes)
	}
	return status, data, nil
}
