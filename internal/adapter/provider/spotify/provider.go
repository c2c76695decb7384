// Package spotify fetches song metadata from the Spotify Web API using
// the client-credentials flow. Tokens come from a shared tokencache.Source
// so concurrent lookups reuse one refresh.
package spotify

import (
	"context"
	"encoding/base64"
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
	"github.com/lingobeats/lingobeats-backend/internal/provider"
	"github.com/lingobeats/lingobeats-backend/internal/tokencache"
)

// Provider fetches track metadata from the Spotify Web API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokencache.Source
	log        *slog.Logger
}

// NewProvider creates a Provider from config. The client-credentials
// refresh is wired into a single-flight token source.
func NewProvider(cfg config.SpotifyConfig, logger *slog.Logger) *Provider {
	log := logger.With("adapter", "spotify")
	httpClient := &http.Client{Timeout: cfg.Timeout}

	refresh := refreshFunc(httpClient, cfg.TokenURL, cfg.ClientID, cfg.ClientSecret)

	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokencache.NewSource(log, refresh),
		log:        log,
	}
}

// FindSongByID fetches track metadata by its Spotify track id.
// Returns nil, nil if the track is not found (HTTP 404).
func (p *Provider) FindSongByID(ctx context.Context, id string) (*provider.SongInfo, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify: token: %w", err)
	}

	reqURL := p.baseURL + "/tracks/" + url.PathEscape(id)

	p.log.DebugContext(ctx, "spotify request", slog.String("track_id", id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.doWithRetry(ctx, req, id)
	if err != nil {
		p.log.ErrorContext(ctx, "spotify request failed", slog.String("track_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("spotify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: unexpected status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spotify: read body: %w", err)
	}

	var track apiTrack
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, fmt.Errorf("spotify: decode json: %w", err)
	}

	info := mapTrack(track)

	p.log.DebugContext(ctx, "spotify response",
		slog.String("track_id", id),
		slog.String("name", info.Name),
		slog.Int("singers", len(info.Singers)),
	)

	return info, nil
}

const retryBackoff = 500 * time.Millisecond

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The backoff wait aborts as soon as the context is cancelled.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, id string) (*http.Response, error) {
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
	p.log.WarnContext(ctx, "spotify retry", slog.String("track_id", id), slog.String("reason", reason))

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

// refreshFunc builds the client-credentials grant request against the
// accounts token endpoint. Spotify returns an expires_in in seconds.
func refreshFunc(httpClient *http.Client, tokenURL, clientID, clientSecret string) tokencache.RefreshFunc {
	basic := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))

	return func(ctx context.Context) (tokencache.Token, error) {
		form := url.Values{"grant_type": {"client_credentials"}}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
		if err != nil {
			return tokencache.Token{}, fmt.Errorf("spotify: create token request: %w", err)
		}
		req.Header.Set("Authorization", "Basic "+basic)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := httpClient.Do(req)
		if err != nil {
			return tokencache.Token{}, fmt.Errorf("spotify: token request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return tokencache.Token{}, fmt.Errorf("spotify: token status %d: %w", resp.StatusCode, domain.ErrUpstream)
		}

		var grant apiTokenGrant
		if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
			return tokencache.Token{}, fmt.Errorf("spotify: decode token response: %w", err)
		}
		if grant.AccessToken == "" {
			return tokencache.Token{}, fmt.Errorf("spotify: empty access token: %w", domain.ErrUpstream)
		}

		return tokencache.Token{
			Value:     grant.AccessToken,
			ExpiresAt: time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second),
		}, nil
	}
}

// mapTrack converts the API track into a provider.SongInfo.
func mapTrack(track apiTrack) *provider.SongInfo {
	info := &provider.SongInfo{
		ID:          track.ID,
		Name:        track.Name,
		URI:         track.URI,
		ExternalURL: track.ExternalURLs.Spotify,
		AlbumID:     track.Album.ID,
		AlbumName:   track.Album.Name,
		AlbumURL:    track.Album.ExternalURLs.Spotify,
		Singers:     make([]provider.SingerInfo, 0, len(track.Artists)),
	}

	// The first image is the largest; the app only needs one.
	if len(track.Album.Images) > 0 {
		info.AlbumImageURL = track.Album.Images[0].URL
	}

	for _, a := range track.Artists {
		info.Singers = append(info.Singers, provider.SingerInfo{ID: a.ID, Name: a.Name})
	}

	return info
}
