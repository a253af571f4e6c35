package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestChromeHeaders(t *testing.T) {
	h := ChromeHeaders()

	required := []string{"accept", "accept-language", "user-agent"}
	for _, key := range required {
		if _, ok := h[key]; !ok {
			t.Errorf("ChromeHeaders() missing key %q", key)
		}
	}

	ua := h["user-agent"]
	if ua == "" {
		t.Error("user-agent is empty")
	}
	// Should contain Chrome identifier
	if len(ua) < 20 {
		t.Errorf("user-agent too short: %q", ua)
	}
}

func TestHTTPTransportGet(t *testing.T) {
	var gotCookie, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Query().Get("v") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("<html>ok</html>")) //nolint:errcheck
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.Client(), 0)
	ctx := context.Background()

	status, body, err := tr.Get(ctx, srv.URL+"/watch?v=abc", map[string]string{"Cookie": "CONSENT=YES+x"})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if gotCookie != "CONSENT=YES+x" {
		t.Errorf("cookie = %q", gotCookie)
	}
	if gotUA == "" {
		t.Error("expected a user-agent")
	}

	// Empty header values are dropped.
	if _, _, err := tr.Get(ctx, srv.URL+"/watch?v=abc", map[string]string{"Cookie": ""}); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if gotCookie != "" {
		t.Errorf("expected no cookie header, got %q", gotCookie)
	}

	// Non-2xx statuses are returned, not turned into errors.
	status, _, err = tr.Get(ctx, srv.URL+"/watch?v=missing", nil)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestHTTPTransportTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64))) //nolint:errcheck
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.Client(), 0)
	tr.maxBody = 64
	if _, body, err := tr.Get(context.Background(), srv.URL, nil); err != nil || len(body) != 64 {
		t.Fatalf("body at the cap: len=%d err=%v", len(body), err)
	}

	tr.maxBody = 63
	_, body, err := tr.Get(context.Background(), srv.URL, nil)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if body != nil {
		t.Errorf("expected no body, got %d bytes", len(body))
	}
}

func TestStealthTimeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{0, 15},
		{-time.Second, 15},
		{30 * time.Second, 30},
		{1500 * time.Millisecond, 2},
		{time.Millisecond, 1},
	}
	for _, tt := range tests {
		if got := StealthTimeout(tt.in); got != tt.want {
			t.Errorf("StealthTimeout(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHTTPTransportCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewHTTPTransport(srv.Client(), 0).Get(ctx, srv.URL, nil); err == nil {
		t.Error("expected error on canceled context")
	}
}

func TestHTTPTransportRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.Client(), 20)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, _, err := tr.Get(context.Background(), srv.URL, nil); err != nil {
			t.Fatalf("Get error: %v", err)
		}
	}
	// burst 1 at 20 rps: the 2nd and 3rd requests wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 requests at 20 rps took %v, expected pacing", elapsed)
	}
}

func TestNewTransport(t *testing.T) {
	if _, ok := NewTransport(Config{}).(*HTTPTransport); !ok {
		t.Error("expected HTTPTransport without a browser client")
	}
	if !strings.HasPrefix(FormatMetrics(), "fetch_requests ") {
		t.Error("metrics should start with fetch_requests")
	}
}
