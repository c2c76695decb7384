// Package classifier grades lyric vocabulary by CEFR difficulty. It cleans
// and tokenizes raw lyric text, submits the surviving words to an external
// scoring oracle, and returns per-word levels.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

type oracle interface {
	Score(ctx context.Context, words []string) (map[string]string, error)
}

// Classifier tokenizes text and assigns a CEFR level per word.
type Classifier struct {
	log    *slog.Logger
	oracle oracle
}

// New creates a Classifier backed by the given scoring oracle.
func New(logger *slog.Logger, oracle oracle) *Classifier {
	return &Classifier{
		log:    logger.With("component", "classifier"),
		oracle: oracle,
	}
}

// ClassifyFine returns a word→fine-CEFR-code mapping (A1..C2) for the text.
// An empty token list short-circuits without invoking the oracle.
// Words the oracle does not recognize are absent from the result.
func (c *Classifier) ClassifyFine(ctx context.Context, text string) (map[string]string, error) {
	words := Tokenize(Clean(text))
	if len(words) == 0 {
		return map[string]string{}, nil
	}

	scores, err := c.oracle.Score(ctx, words)
	if err != nil {
		c.log.ErrorContext(ctx, "difficulty oracle failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("score words: %w", err)
	}

	levels := make(map[string]string, len(scores))
	for word, code := range scores {
		if _, ok := domain.FineLevelScore(code); !ok {
			continue
		}
		levels[word] = code
	}
	return levels, nil
}

// Classify returns a word→coarse-level mapping (A/B/C) for the text.
// Words without a recognized classification are dropped, not errors.
func (c *Classifier) Classify(ctx context.Context, text string) (map[string]domain.Level, error) {
	words := Tokenize(Clean(text))
	if len(words) == 0 {
		return map[string]domain.Level{}, nil
	}

	scores, err := c.oracle.Score(ctx, words)
	if err != nil {
		c.log.ErrorContext(ctx, "difficulty oracle failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("score words: %w", err)
	}

	levels := make(map[string]domain.Level, len(scores))
	for word, code := range scores {
		level, ok := domain.CoarsenLevel(code)
		if !ok {
			continue
		}
		levels[word] = level
	}

	c.log.DebugContext(ctx, "classified lyric words",
		slog.Int("tokens", len(words)),
		slog.Int("classified", len(levels)),
	)
	return levels, nil
}
