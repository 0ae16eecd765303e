package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	FetchTimeout         time.Duration
	MaxTranscriptChars   int     // 0 = unlimited
	TranslateChunkRunes  int     // max runes per translation request
	TranslateRPS         float64 // translation requests per second
	CatalogFile          string  // JSON file path or http(s) URL; empty = built-in catalog
	DownloadDir          string
	LibraryDB            string // sqlite path
	DatabaseURL          string // postgres; overrides LibraryDB when set
	YouTubeHL            string // interface language sent to YouTube
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	LLMClient            *llm.Client // nil = translation disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg
}
