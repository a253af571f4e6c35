// go_captions: YouTube caption retrieval MCP server.
//
// Exposes youtube_caption_tracks, youtube_captions and, when ARCHIVE_PATH is
// set, youtube_caption_archive. Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_captions/internal/archive"
	"github.com/anatolykoptev/go_captions/internal/captions"
	"github.com/anatolykoptev/go_captions/internal/captionserver"
	"github.com/anatolykoptev/go_captions/internal/engine"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8891")
)

func main() {
	c := initEngine()

	slog.Info("starting go_captions",
		slog.String("port", mcpPort),
		slog.Bool("browser_client", c.BrowserClient != nil),
	)

	var opts []captions.Option
	if c.Cookie != "" {
		opts = append(opts, captions.WithCookie(c.Cookie))
	}
	scraper := captions.NewScraper(engine.NewTransport(c), opts...)

	var store *archive.Store
	if c.ArchivePath != "" {
		s, err := archive.Open(c.ArchivePath)
		if err != nil {
			slog.Warn("archive init failed, running without archive", slog.Any("error", err))
		} else {
			store = s
			defer store.Close()
			slog.Info("archive opened", slog.String("path", c.ArchivePath))
		}
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_captions",
		Version: version,
	}, nil)

	n := captionserver.RegisterTools(server, captionserver.NewService(scraper, store))
	slog.Info("tools registered", slog.Int("count", n))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_captions",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() engine.Config {
	c := engine.Config{
		Lang:                 env.Str("CAPTIONS_LANG", "en"),
		Cookie:               env.Str("CAPTIONS_COOKIE", ""),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 15*time.Second),
		RequestsPerSecond:    env.Float("REQUESTS_PER_SECOND", 2),
		MaxTranscriptChars:   env.Int("MAX_TRANSCRIPT_CHARS", 50000),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		ArchivePath:          env.Str("ARCHIVE_PATH", ""),
	}
	c.HTTPClient = engine.NewHTTPClient(c.FetchTimeout)

	if env.Str("USE_BROWSER_CLIENT", "") == "true" {
		var opts []stealth.ClientOption
		opts = append(opts, stealth.WithTimeout(engine.StealthTimeout(c.FetchTimeout)))

		if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
			pool, err := proxypool.NewWebshare(apiKey)
			if err != nil {
				slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
			} else {
				opts = append(opts, stealth.WithProxyPool(pool))
				slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
			}
		}

		bc, err := stealth.NewClient(opts...)
		if err != nil {
			slog.Error("stealth client init failed, falling back to net/http", slog.Any("error", err))
		} else {
			c.BrowserClient = bc
			slog.Info("stealth browser client initialized")
		}
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 6*time.Hour)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
	return c
}
