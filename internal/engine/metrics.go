package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ResolveRequests      atomic.Int64
	ResolveFailures      atomic.Int64
	LanguageListRequests atomic.Int64
	TranscriptRequests   atomic.Int64
	TranscriptErrors     atomic.Int64
	TranslateRequests    atomic.Int64
	TranslateErrors      atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	Downloads            atomic.Int64
}

var metricKeys = []string{
	"resolve_requests", "resolve_failures",
	"language_list_requests",
	"transcript_requests", "transcript_errors",
	"translate_requests", "translate_errors",
	"llm_calls", "llm_errors",
	"downloads",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"resolve_requests":       metrics.ResolveRequests.Load(),
		"resolve_failures":       metrics.ResolveFailures.Load(),
		"language_list_requests": metrics.LanguageListRequests.Load(),
		"transcript_requests":    metrics.TranscriptRequests.Load(),
		"transcript_errors":      metrics.TranscriptErrors.Load(),
		"translate_requests":     metrics.TranslateRequests.Load(),
		"translate_errors":       metrics.TranslateErrors.Load(),
		"llm_calls":              metrics.LLMCalls.Load(),
		"llm_errors":             metrics.LLMErrors.Load(),
		"downloads":              metrics.Downloads.Load(),
		"cache_hits":             hits,
		"cache_misses":           misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrResolve(failed bool) {
	metrics.ResolveRequests.Add(1)
	if failed {
		metrics.ResolveFailures.Add(1)
	}
}
func IncrLanguageList()  { metrics.LanguageListRequests.Add(1) }
func IncrTranscript()    { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErr() { metrics.TranscriptErrors.Add(1) }
func IncrTranslate()     { metrics.TranslateRequests.Add(1) }
func IncrTranslateErr()  { metrics.TranslateErrors.Add(1) }
func IncrDownload()      { metrics.Downloads.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
