// Package material provides business logic for generating study material
// for a song's vocabulary in bounded generator batches.
package material

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

const defaultBatchSize = 10

type vocabRepo interface {
	ForSong(ctx context.Context, songID string) ([]domain.Vocabulary, error)
	UpdateMaterial(ctx context.Context, vocabID uuid.UUID, material *domain.Material) error
}

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service fills blank vocabulary material through a text generator.
type Service struct {
	log       *slog.Logger
	vocabs    vocabRepo
	gen       generator
	batchSize int
}

// NewService creates a new material service.
func NewService(log *slog.Logger, vocabs vocabRepo, gen generator, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{
		log:       log.With("service", "material"),
		vocabs:    vocabs,
		gen:       gen,
		batchSize: batchSize,
	}
}

// FillMaterials returns the song's vocabulary with material filled in,
// generating payloads for words that lack one. Words with material are
// never regenerated; when nothing is pending this is a pure read. Pending
// words are chunked and the generator is called once per chunk, so the
// upstream call volume is ceil(pending/batchSize). Batches fail
// independently; only when every batch call fails does the operation
// surface an upstream error.
func (s *Service) FillMaterials(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error) {
	vocabs, err := s.vocabs.ForSong(ctx, song.ID)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary for %s: %w", song.ID, err)
	}

	var pending []int
	for i, v := range vocabs {
		if !v.HasMaterial() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return vocabs, nil
	}

	batches := chunk(pending, s.batchSize)
	failed := 0

	for _, batch := range batches {
		words := make([]domain.Vocabulary, len(batch))
		for i, idx := range batch {
			words[i] = vocabs[idx]
		}

		raw, err := s.gen.Generate(ctx, buildPrompt(words, song))
		if err != nil {
			s.log.WarnContext(ctx, "material batch generation failed",
				slog.String("song_id", song.ID),
				slog.Int("batch_words", len(words)),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}

		items := parseBatch(raw)

		for i, idx := range batch {
			if i >= len(items) {
				break
			}
			target := vocabs[idx]
			item := items[i]
			if !validMaterial(item, target.Name) {
				s.log.WarnContext(ctx, "material item rejected",
					slog.String("song_id", song.ID),
					slog.String("word", target.Name),
				)
				continue
			}
			if err := s.vocabs.UpdateMaterial(ctx, target.ID, &item); err != nil {
				return nil, fmt.Errorf("store material for %q: %w", target.Name, err)
			}
			vocabs[idx] = target.WithMaterial(&item)
		}
	}

	if failed == len(batches) {
		return nil, fmt.Errorf("all %d material batches failed for %s: %w", len(batches), song.ID, domain.ErrUpstream)
	}

	s.log.InfoContext(ctx, "materials filled",
		slog.String("song_id", song.ID),
		slog.Int("pending", len(pending)),
		slog.Int("batches", len(batches)),
		slog.Int("failed_batches", failed),
	)
	return vocabs, nil
}

// chunk splits indexes into runs of at most size.
func chunk(indexes []int, size int) [][]int {
	var out [][]int
	for len(indexes) > size {
		out = append(out, indexes[:size])
		indexes = indexes[size:]
	}
	return append(out, indexes)
}
