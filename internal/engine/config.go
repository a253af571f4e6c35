package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	Lang                 string  // watch page interface language, "" = en
	Cookie               string  // caller-supplied session cookie, optional
	FetchTimeout         time.Duration
	RequestsPerSecond    float64 // 0 = unlimited
	MaxTranscriptChars   int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	ArchivePath          string         // "" = archive disabled
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = plain net/http transport
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// NewTransport returns the transport main wires into the caption scraper:
// the stealth browser client when configured, net/http otherwise.
func NewTransport(c Config) Transport {
	if c.BrowserClient != nil {
		return NewBrowserTransport(c.BrowserClient, c.RequestsPerSecond)
	}
	return NewHTTPTransport(c.HTTPClient, c.RequestsPerSecond)
}
