// Package gemini calls the generateContent endpoint of the Gemini API and
// returns the raw generated text. Callers own prompt construction and
// response parsing.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lingobeats/lingobeats-backend/internal/config"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// Provider generates text with the Gemini API.
type Provider struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from config.
func NewProvider(cfg config.GeminiConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "gemini"),
	}
}

// Generate sends the prompt to generateContent and returns the joined text
// of the first candidate's parts.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("gemini: empty prompt: %w", domain.ErrValidation)
	}

	reqBody := apiRequest{
		Contents: []apiContent{{
			Role:  "user",
			Parts: []apiPart{{Text: prompt}},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)

	p.log.DebugContext(ctx, "gemini request",
		slog.String("model", p.model),
		slog.Int("prompt_chars", len(prompt)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.doWithRetry(ctx, req, payload)
	if err != nil {
		p.log.ErrorContext(ctx, "gemini request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read body: %w", err)
	}

	var generated apiResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		return "", fmt.Errorf("gemini: decode json: %w", err)
	}

	text := joinParts(generated)
	if text == "" {
		return "", fmt.Errorf("gemini: empty candidates: %w", domain.ErrUpstream)
	}

	p.log.DebugContext(ctx, "gemini response", slog.Int("chars", len(text)))
	return text, nil
}

const retryBackoff = 500 * time.Millisecond

// doWithRetry executes the request with a single retry on 5xx or network
// errors. POST bodies are rebuilt for the second attempt; the backoff wait
// aborts as soon as the context is cancelled.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, payload []byte) (*http.Response, error) {
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
	p.log.WarnContext(ctx, "gemini retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	retry := req.Clone(ctx)
	retry.Body = io.NopCloser(bytes.NewReader(payload))
	resp, err = p.httpClient.Do(retry)
	return resp, err
}

// joinParts concatenates the text parts of the first candidate.
func joinParts(resp apiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}
