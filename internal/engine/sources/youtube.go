// Package sources holds the transcript provider implementations.
package sources

// The YouTube provider is split across two files by responsibility.
// youtube_innertube.go: Innertube API types, constants and the ANDROID /player call.
// youtube_transcript.go: track listing and transcript fetching (watch page, then player fallback).
