// Package cefr scores word difficulty by shelling out to a Python CEFR
// analyzer. Words go in as one comma-joined argument; levels come back as
// a JSON object on stdout.
package cefr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/config"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// Provider scores words with an external CEFR analyzer process.
type Provider struct {
	cfg config.ClassifierConfig
	log *slog.Logger
}

// NewProvider creates a Provider from config.
func NewProvider(cfg config.ClassifierConfig, logger *slog.Logger) *Provider {
	return &Provider{
		cfg: cfg,
		log: logger.With("adapter", "cefr"),
	}
}

// Score runs the analyzer and returns word → fine level code ("A1".."C2",
// or "None" for words the analyzer does not know).
func (p *Provider) Score(ctx context.Context, words []string) (map[string]string, error) {
	if len(words) == 0 {
		return map[string]string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.cfg.Command, p.cfg.Script, strings.Join(words, ","))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.log.DebugContext(ctx, "cefr scoring", slog.Int("words", len(words)))

	if err := cmd.Run(); err != nil {
		p.log.ErrorContext(ctx, "cefr process failed",
			slog.String("error", err.Error()),
			slog.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return nil, fmt.Errorf("cefr: run %s: %w: %w", p.cfg.Command, err, domain.ErrUpstream)
	}

	levels := make(map[string]string, len(words))
	if err := json.Unmarshal(stdout.Bytes(), &levels); err != nil {
		return nil, fmt.Errorf("cefr: decode output: %w", err)
	}

	p.log.DebugContext(ctx, "cefr scored", slog.Int("levels", len(levels)))
	return levels, nil
}
