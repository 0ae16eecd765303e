// go_transcript: YouTube transcript MCP server.
//
// Exposes tools to resolve video URLs, list and fetch transcripts, translate
// them, save them as files and browse previously fetched transcripts.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/library"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/translate"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()
	svc := newService(context.Background())
	if svc.Library != nil {
		defer svc.Library.Close()
	}

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server, svc)
	slog.Info("tools registered", slog.Int("count", transcriptserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	dataDir := filepath.Join(os.Getenv("HOME"), ".go_transcript")

	c := engine.Config{
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 16384),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 15*time.Second),
		MaxTranscriptChars:   env.Int("MAX_TRANSCRIPT_CHARS", 0),
		TranslateChunkRunes:  env.Int("TRANSLATE_CHUNK_RUNES", 3000),
		TranslateRPS:         env.Float("TRANSLATE_RPS", 2),
		CatalogFile:          env.Str("CATALOG_FILE", ""),
		DownloadDir:          env.Str("DOWNLOAD_DIR", filepath.Join(dataDir, "downloads")),
		LibraryDB:            env.Str("LIBRARY_DB", filepath.Join(dataDir, "library.db")),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		YouTubeHL:            env.Str("YOUTUBE_HL", "en"),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
		)
	} else {
		slog.Warn("LLM_API_KEY not set, translation disabled")
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 30*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

// newService wires the tool collaborators from engine.Cfg.
func newService(ctx context.Context) *transcriptserver.Service {
	c := engine.Cfg

	catalog, err := translate.LoadCatalog(ctx, c.HTTPClient, c.CatalogFile)
	if err != nil {
		slog.Warn("catalog load failed, using built-in catalog", slog.Any("error", err))
		catalog = translate.DefaultCatalog()
	}
	slog.Info("language catalog ready", slog.Int("languages", catalog.Len()))

	yt := sources.NewYouTube(c.HTTPClient)
	yt.HL = c.YouTubeHL

	svc := &transcriptserver.Service{
		Resolver:    ytref.DefaultResolver,
		Provider:    yt,
		Catalog:     catalog,
		DownloadDir: c.DownloadDir,
		MaxChars:    c.MaxTranscriptChars,
	}

	if c.LLMClient != nil {
		svc.Translator = translate.NewLLM(engine.CallLLM, translate.LLMOptions{
			ChunkRunes: c.TranslateChunkRunes,
			RPS:        c.TranslateRPS,
			Catalog:    catalog,
		})
	}

	svc.Library = openLibrary(ctx, c)
	return svc
}

// openLibrary prefers Postgres when DATABASE_URL is set and falls back to SQLite.
// A nil store disables transcript_history.
func openLibrary(ctx context.Context, c *engine.Config) library.Store {
	if c.DatabaseURL != "" {
		pg, err := library.ConnectPostgres(ctx, c.DatabaseURL)
		if err == nil {
			return pg
		}
		slog.Warn("library postgres init failed, falling back to sqlite", slog.Any("error", err))
	}
	if c.LibraryDB == "" {
		return nil
	}
	db, err := library.OpenSQLite(c.LibraryDB)
	if err != nil {
		slog.Warn("library sqlite init failed, history disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("library sqlite ready", slog.String("path", c.LibraryDB))
	return db
}
