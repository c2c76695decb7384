// Package genius fetches song lyrics by searching the Genius API for the
// song page and scraping the lyric containers out of its HTML.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lingobeats/lingobeats-backend/internal/config"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// Page fetches use a browser user agent; the lyric pages are served to
// browsers, not API clients.
const pageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36"

// Provider fetches lyrics from Genius: API search first, then the song
// page HTML.
type Provider struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewProvider creates a Provider from config.
func NewProvider(cfg config.GeniusConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", "genius"),
	}
}

// Fetch returns the lyric text for the song, or "" when Genius has no
// matching page or the page carries no lyric containers.
func (p *Provider) Fetch(ctx context.Context, songName, singerName string) (string, error) {
	query := buildQuery(songName, singerName)

	pageURL, err := p.firstHitURL(ctx, query)
	if err != nil {
		return "", err
	}
	if pageURL == "" {
		p.log.DebugContext(ctx, "genius no search hits", slog.String("query", query))
		return "", nil
	}

	html, err := p.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	text, err := ExtractLyrics(html)
	if err != nil {
		return "", fmt.Errorf("genius: extract lyrics: %w", err)
	}

	p.log.DebugContext(ctx, "genius lyrics fetched",
		slog.String("query", query),
		slog.String("url", pageURL),
		slog.Int("chars", len(text)),
	)

	return text, nil
}

// firstHitURL searches Genius and returns the first hit's page URL,
// or "" when the search has no hits.
func (p *Provider) firstHitURL(ctx context.Context, query string) (string, error) {
	reqURL := p.baseURL + "/search?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("genius: create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.doWithRetry(ctx, req, query)
	if err != nil {
		p.log.ErrorContext(ctx, "genius search failed", slog.String("query", query), slog.String("error", err.Error()))
		return "", fmt.Errorf("genius: search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genius: search status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("genius: read search body: %w", err)
	}

	var search apiSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return "", fmt.Errorf("genius: decode search json: %w", err)
	}

	if len(search.Response.Hits) == 0 {
		return "", nil
	}
	return search.Response.Hits[0].Result.URL, nil
}

// fetchPage downloads the lyric page HTML with a browser user agent.
func (p *Provider) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("genius: create page request: %w", err)
	}
	req.Header.Set("User-Agent", pageUserAgent)

	resp, err := p.doWithRetry(ctx, req, pageURL)
	if err != nil {
		p.log.ErrorContext(ctx, "genius page fetch failed", slog.String("url", pageURL), slog.String("error", err.Error()))
		return "", fmt.Errorf("genius: page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genius: page status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("genius: read page body: %w", err)
	}
	return string(body), nil
}

const retryBackoff = 500 * time.Millisecond

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The backoff wait aborts as soon as the context is cancelled.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, target string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "genius retry", slog.String("target", target), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// buildQuery joins song and singer names for the search endpoint.
func buildQuery(songName, singerName string) string {
	if strings.TrimSpace(singerName) == "" {
		return songName
	}
	return songName + " " + singerName
}
