package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/ytref"
)

// YouTube transcript fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → captionTracks (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks   (works from non-blocked IPs)

// Provider failures. Callers match them with errors.Is.
var (
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
	ErrNoTranscript        = errors.New("no transcript in language")
	ErrVideoNotFound       = errors.New("video not found")
)

// Track is one caption track offered for a video.
type Track struct {
	Code      ytref.LanguageCode `json:"code"`
	Name      string             `json:"name,omitempty"`
	Generated bool               `json:"generated"`
}

// Fragment is one caption cue. Timing is in seconds.
type Fragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// YouTube fetches caption tracks and transcripts. The zero value is not usable;
// construct with NewYouTube.
type YouTube struct {
	Client    *http.Client
	WatchURL  string
	PlayerURL string
	HL        string
}

// NewYouTube returns a provider using client for all requests.
func NewYouTube(client *http.Client) *YouTube {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTube{
		Client:    client,
		WatchURL:  ytWatchURL,
		PlayerURL: ytInnertubeURL,
		HL:        "en",
	}
}

func (y *YouTube) hl() string {
	if y.HL == "" {
		return "en"
	}
	return y.HL
}

// Languages lists the caption tracks available for videoID.
func (y *YouTube) Languages(ctx context.Context, videoID ytref.VideoID) ([]Track, error) {
	engine.IncrLanguageList()
	raw, err := y.captionTracks(ctx, string(videoID))
	if err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		// A language can have a manual and an ASR track; list it once, manual first.
		key := strings.ToLower(t.LanguageCode)
		if seen[key] {
			continue
		}
		seen[key] = true
		tracks = append(tracks, toTrack(pickBestTrack(raw, t.LanguageCode)))
	}
	return tracks, nil
}

// Codes returns just the language codes of tracks, in order.
func Codes(tracks []Track) []ytref.LanguageCode {
	out := make([]ytref.LanguageCode, len(tracks))
	for i, t := range tracks {
		out[i] = t.Code
	}
	return out
}

// Fetch returns the caption fragments of videoID in language code.
func (y *YouTube) Fetch(ctx context.Context, videoID ytref.VideoID, code ytref.LanguageCode) ([]Fragment, error) {
	engine.IncrTranscript()
	raw, err := y.captionTracks(ctx, string(videoID))
	if err != nil {
		engine.IncrTranscriptErr()
		return nil, err
	}
	track := pickBestTrack(raw, string(code))
	if track.LanguageCode == "" {
		engine.IncrTranscriptErr()
		return nil, fmt.Errorf("%w: %s", ErrNoTranscript, code)
	}
	if needsPoToken(track.BaseURL) {
		engine.IncrTranscriptErr()
		return nil, fmt.Errorf("%w: %s track requires PoToken", ErrNoTranscript, code)
	}
	frags, err := y.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		engine.IncrTranscriptErr()
		return nil, err
	}
	return frags, nil
}

// captionTracks returns raw tracks, trying the watch page first and the ANDROID
// player second. A definitive "video not found" from the first source is final.
func (y *YouTube) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pr, err := y.scrapeWatchPage(ctx, videoID)
	if err == nil {
		tracks, terr := tracksFrom(pr)
		if terr == nil || errors.Is(terr, ErrVideoNotFound) {
			return tracks, terr
		}
		err = terr
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	pr, err = y.postPlayerAndroid(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return tracksFrom(pr)
}

// tracksFrom classifies a player response into tracks or a provider failure.
func tracksFrom(pr *playerResp) ([]captionTrack, error) {
	if ps := pr.PlayabilityStatus; ps != nil && ps.Status == "ERROR" {
		if ps.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, ps.Reason)
		}
		return nil, ErrVideoNotFound
	}
	if pr.Captions == nil || len(pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		if ps := pr.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
			return nil, fmt.Errorf("captions unavailable: %s %s", ps.Status, ps.Reason)
		}
		return nil, ErrTranscriptsDisabled
	}
	return pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

func toTrack(t captionTrack) Track {
	return Track{
		Code:      ytref.LanguageCode(t.LanguageCode),
		Name:      t.Name.String(),
		Generated: t.Kind == "asr",
	}
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the track for lang: a usable manual track, then a usable
// auto-generated one, then any track in lang. Returns the zero track when lang is absent.
func pickBestTrack(tracks []captionTrack, lang string) captionTrack {
	var manual, asr, first captionTrack
	for _, t := range tracks {
		if !strings.EqualFold(t.LanguageCode, lang) {
			continue
		}
		if first.LanguageCode == "" {
			first = t
		}
		if needsPoToken(t.BaseURL) {
			continue
		}
		if t.Kind != "asr" && manual.LanguageCode == "" {
			manual = t
		}
		if t.Kind == "asr" && asr.LanguageCode == "" {
			asr = t
		}
	}
	switch {
	case manual.LanguageCode != "":
		return manual
	case asr.LanguageCode != "":
		return asr
	}
	return first
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// scrapeWatchPage loads the watch page and decodes ytInitialPlayerResponse
// from the inline script that carries it.
func (y *YouTube) scrapeWatchPage(ctx context.Context, videoID string) (*playerResp, error) {
	watchURL := y.WatchURL + "?v=" + url.QueryEscape(videoID) + "&hl=" + url.QueryEscape(y.hl())

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return y.Client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var jsonData []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, ytInitialPlayerResponseMarker)
		if idx < 0 {
			return true
		}
		jsonData = extractJSON([]byte(text[idx+len(ytInitialPlayerResponseMarker):]))
		return jsonData == nil
	})
	if jsonData == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var pr playerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) ([]Fragment, error) {
	target := defaultFormat(baseURL)
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return y.Client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty timedtext response", ErrNoTranscript)
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	frags := make([]Fragment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanCaption(line.Text)
		if text == "" {
			continue
		}
		frags = append(frags, Fragment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	return frags, nil
}

// defaultFormat drops any fmt parameter so timedtext answers in the
// <transcript><text start dur> layout that ytTimedText decodes.
func defaultFormat(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	q := u.Query()
	if !q.Has("fmt") {
		return baseURL
	}
	q.Del("fmt")
	u.RawQuery = q.Encode()
	return u.String()
}

// JoinFragments joins fragment texts with sep, the way transcripts are presented.
func JoinFragments(frags []Fragment, sep string) string {
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, sep)
}
