// Package lyric provides business logic for lyric acquisition: fetch,
// validate, persist, and kick off vocabulary extraction.
package lyric

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// Lyrics below this English confidence are rejected as unsuitable for
// English learners.
const englishThreshold = 0.9

type songEnsurer interface {
	EnsureSong(ctx context.Context, id string) (*domain.Song, error)
}

type lyricStore interface {
	AttachLyric(ctx context.Context, songID string, lyric domain.Lyric) error
}

type lyricFetcher interface {
	Fetch(ctx context.Context, songName, singerName string) (string, error)
}

type englishDetector interface {
	EnglishConfidence(text string) float64
}

type vocabularyEnsurer interface {
	EnsureVocabulary(ctx context.Context, song *domain.Song) error
}

// Service wraps lyric acquisition around song storage, the lyric provider,
// and language validation.
type Service struct {
	log      *slog.Logger
	songs    songEnsurer
	store    lyricStore
	fetcher  lyricFetcher
	detector englishDetector
	vocab    vocabularyEnsurer
}

// NewService creates a new lyric service.
func NewService(log *slog.Logger, songs songEnsurer, store lyricStore, fetcher lyricFetcher, detector englishDetector, vocab vocabularyEnsurer) *Service {
	return &Service{
		log:      log.With("service", "lyric"),
		songs:    songs,
		store:    store,
		fetcher:  fetcher,
		detector: detector,
		vocab:    vocab,
	}
}

// EnsureLyric returns the song with its lyric attached, fetching and
// validating the lyric on a local miss. A song that already carries a
// lyric short-circuits: no re-fetch, no re-validation. Validation failures
// leave the song without a lyric so a later attempt can retry.
func (s *Service) EnsureLyric(ctx context.Context, songID string) (*domain.Song, error) {
	song, err := s.songs.EnsureSong(ctx, songID)
	if err != nil {
		return nil, err
	}

	if song.LyricText() != "" {
		return song, nil
	}

	if !song.Qualified() {
		return nil, fmt.Errorf("song %q is not recommended for learning: %w", song.Name, domain.ErrValidation)
	}

	text, err := s.fetcher.Fetch(ctx, song.Name, song.PrimarySinger())
	if err != nil {
		return nil, fmt.Errorf("fetch lyric for %s: %w", songID, err)
	}
	if text == "" {
		return nil, fmt.Errorf("no lyric found for %q: %w", song.Name, domain.ErrValidation)
	}

	if conf := s.detector.EnglishConfidence(text); conf < englishThreshold {
		s.log.InfoContext(ctx, "lyric rejected as non-English",
			slog.String("song_id", songID),
			slog.Float64("confidence", conf),
		)
		return nil, fmt.Errorf("lyric for %q is not English enough: %w", song.Name, domain.ErrValidation)
	}

	lyric := domain.Lyric{Text: text}
	if err := s.store.AttachLyric(ctx, songID, lyric); err != nil {
		return nil, fmt.Errorf("attach lyric to %s: %w", songID, err)
	}

	withLyric := song.WithLyric(&lyric)

	s.log.InfoContext(ctx, "lyric attached",
		slog.String("song_id", songID),
		slog.String("checksum", lyric.Checksum()),
		slog.Int("chars", len(text)),
	)

	if err := s.vocab.EnsureVocabulary(ctx, &withLyric); err != nil {
		return nil, fmt.Errorf("extract vocabulary for %s: %w", songID, err)
	}

	return &withLyric, nil
}
