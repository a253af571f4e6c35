package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxBodyBytes caps a response body; watch pages run to a few MB.
const maxBodyBytes = 8 << 20

// ErrTooLarge is returned when a response body exceeds the size cap. The body
// is not returned cut short, since a truncated page loses its end markers.
var ErrTooLarge = errors.New("response body too large")

// Transport performs one GET and returns status and body.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (int, []byte, error)
}

// HTTPTransport is a Transport over net/http, paced by a token bucket.
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter
	maxBody int64
}

// NewHTTPTransport wraps client (nil = a default pooled client).
// rps <= 0 disables pacing.
func NewHTTPTransport(client *http.Client, rps float64) *HTTPTransport {
	if client == nil {
		client = NewHTTPClient(15 * time.Second)
	}
	return &HTTPTransport{client: client, limiter: newLimiter(rps), maxBody: maxBodyBytes}
}

// NewHTTPClient returns a pooled client with the given overall timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Get issues a GET with Chrome-like default headers overlaid by headers.
// Empty header values are not sent.
func (t *HTTPTransport) Get(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}
	metrics.FetchRequests.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		metrics.FetchErrors.Add(1)
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		metrics.FetchErrors.Add(1)
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > t.maxBody {
		metrics.FetchErrors.Add(1)
		return resp.StatusCode, nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, t.maxBody)
	}
	return resp.StatusCode, data, nil
}
