// Package transcriptserver exposes transcript operations as MCP tools.
package transcriptserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine/export"
	"github.com/anatolykoptev/go_transcript/internal/engine/library"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 7

// RegisterTools registers all transcript tools on the given MCP server:
// resolve_video, transcript_languages, transcript_fetch, transcript_translate,
// transcript_download, transcript_history, language_catalog.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerResolve(server, svc)
	registerLanguages(server, svc)
	registerFetch(server, svc)
	registerTranslate(server, svc)
	registerDownload(server, svc)
	registerHistory(server, svc)
	registerCatalog(server, svc)
}

func registerResolve(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_video",
		Description: "Extract the video ID from a YouTube URL (youtube.com/watch?v=ID or youtu.be/ID). Pure parsing, no network access.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		id, err := svc.Resolve(input.URL)
		if err != nil {
			return nil, ResolveOutput{}, toolError(err)
		}
		return nil, ResolveOutput{VideoID: id}, nil
	})
}

func registerLanguages(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_languages",
		Description: "List the transcript languages available for a YouTube video: code, display name and whether the track is auto-generated.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input LanguagesInput) (*mcp.CallToolResult, LanguagesOutput, error) {
		if err := toolutil.Required("url", input.URL); err != nil {
			return nil, LanguagesOutput{}, err
		}
		id, tracks, err := svc.Languages(ctx, input.URL)
		if err != nil {
			return nil, LanguagesOutput{}, toolError(err)
		}
		return nil, LanguagesOutput{VideoID: id, Tracks: tracks}, nil
	})
}

func registerFetch(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_fetch",
		Description: "Fetch the transcript of a YouTube video in the requested language. The language may be a code (en, es) or a name (Spanish); it must be one the video offers.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, Transcript, error) {
		if err := toolutil.Required("url", input.URL); err != nil {
			return nil, Transcript{}, err
		}
		t, err := svc.Transcript(ctx, input.URL, input.Language)
		if err != nil {
			return nil, Transcript{}, toolError(err)
		}
		slog.Debug("transcript_fetch", slog.String("id", string(t.VideoID)),
			slog.String("lang", string(t.Language)), slog.Int("fragments", t.Fragments))
		return nil, *t, nil
	})
}

func registerTranslate(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_translate",
		Description: "Fetch a YouTube transcript and translate it into a target language given as a code (fr, zh-cn) or a name (French). See language_catalog for accepted targets.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input TranslateInput) (*mcp.CallToolResult, Transcript, error) {
		if err := toolutil.Required("url", input.URL); err != nil {
			return nil, Transcript{}, err
		}
		t, err := svc.Translate(ctx, input.URL, input.Language, input.Target)
		if err != nil {
			return nil, Transcript{}, toolError(err)
		}
		return nil, *t, nil
	})
}

func registerDownload(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_download",
		Description: "Save a YouTube transcript, optionally translated, as a txt or md file in the server's download directory. Returns the file path.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input DownloadInput) (*mcp.CallToolResult, export.Result, error) {
		if err := toolutil.Required("url", input.URL); err != nil {
			return nil, export.Result{}, err
		}
		res, err := svc.Download(ctx, input.URL, input.Language, input.Target, input.Name, input.Format)
		if err != nil {
			return nil, export.Result{}, toolError(err)
		}
		slog.Info("transcript saved", slog.String("path", res.Path), slog.Int("bytes", res.Bytes))
		return nil, *res, nil
	})
}

func registerHistory(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_history",
		Description: "List previously fetched and translated transcripts, newest first. Pass id to read one saved transcript in full.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
		if input.ID > 0 {
			e, err := svc.Saved(ctx, input.ID)
			if err != nil {
				return nil, HistoryOutput{}, toolError(err)
			}
			return nil, HistoryOutput{Entries: []library.Entry{*e}, Total: 1}, nil
		}
		entries, total, err := svc.History(ctx, input.URL, input.Limit)
		if err != nil {
			return nil, HistoryOutput{}, toolError(err)
		}
		return nil, HistoryOutput{Entries: entries, Total: total}, nil
	})
}

func registerCatalog(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "language_catalog",
		Description: "List the languages known by name: code and display name. Names are accepted wherever a language is asked for.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CatalogInput) (*mcp.CallToolResult, CatalogOutput, error) {
		langs := svc.CatalogEntries(input.Query)
		return nil, CatalogOutput{Languages: langs, Total: len(langs)}, nil
	})
}
