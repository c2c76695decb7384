// Package pipeline orchestrates the enrichment stages into the public
// operations: lyric acquisition, material generation, level analysis.
// Every failure is tagged with a Kind so adapters can map it onto their
// own status codes.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
	"github.com/lingobeats/lingobeats-backend/pkg/ctxutil"
)

type lyricService interface {
	EnsureLyric(ctx context.Context, songID string) (*domain.Song, error)
}

type materialService interface {
	FillMaterials(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error)
}

type songService interface {
	EnsureSong(ctx context.Context, id string) (*domain.Song, error)
	AnalyzeLevel(ctx context.Context, song *domain.Song) (domain.SongLevel, error)
}

// Service is the enrichment pipeline facade.
type Service struct {
	log       *slog.Logger
	songs     songService
	lyrics    lyricService
	materials materialService
}

// NewService creates a new pipeline service.
func NewService(log *slog.Logger, songs songService, lyrics lyricService, materials materialService) *Service {
	return &Service{
		log:       log.With("service", "pipeline"),
		songs:     songs,
		lyrics:    lyrics,
		materials: materials,
	}
}

// GetOrBuildLyric returns the song with its lyric, building the lyric
// (and, through it, the song's vocabulary) on first demand.
func (s *Service) GetOrBuildLyric(ctx context.Context, songID string) (*domain.Song, error) {
	if err := validateSongID(songID); err != nil {
		return nil, wrapError(err)
	}
	s.logOperation(ctx, "GetOrBuildLyric", songID)

	song, err := s.lyrics.EnsureLyric(ctx, songID)
	if err != nil {
		return nil, wrapError(err)
	}
	return song, nil
}

// GetOrBuildMaterials returns the song's vocabulary with study material.
// Vocabulary must already be populated by a prior lyric acquisition; a
// song with no linked vocabulary is reported as not found rather than
// triggering extraction here.
func (s *Service) GetOrBuildMaterials(ctx context.Context, songID string) ([]domain.Vocabulary, error) {
	if err := validateSongID(songID); err != nil {
		return nil, wrapError(err)
	}
	s.logOperation(ctx, "GetOrBuildMaterials", songID)

	song, err := s.songs.EnsureSong(ctx, songID)
	if err != nil {
		return nil, wrapError(err)
	}

	vocabs, err := s.materials.FillMaterials(ctx, song)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(vocabs) == 0 {
		return nil, wrapError(fmt.Errorf("song %s has no vocabulary: %w", songID, domain.ErrNotFound))
	}
	return vocabs, nil
}

// AnalyzeSong returns the difficulty distribution and average level of
// the song's lyric, acquiring the lyric first when needed.
func (s *Service) AnalyzeSong(ctx context.Context, songID string) (domain.SongLevel, error) {
	if err := validateSongID(songID); err != nil {
		return domain.SongLevel{}, wrapError(err)
	}
	s.logOperation(ctx, "AnalyzeSong", songID)

	song, err := s.lyrics.EnsureLyric(ctx, songID)
	if err != nil {
		return domain.SongLevel{}, wrapError(err)
	}

	level, err := s.songs.AnalyzeLevel(ctx, song)
	if err != nil {
		return domain.SongLevel{}, wrapError(err)
	}
	return level, nil
}

func validateSongID(songID string) error {
	if strings.TrimSpace(songID) == "" {
		return domain.NewValidationError("song_id", "required")
	}
	return nil
}

func (s *Service) logOperation(ctx context.Context, op, songID string) {
	log := s.log
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		log = log.With("request_id", reqID)
	}
	log.InfoContext(ctx, "pipeline operation started", "op", op, "song_id", songID)
}
