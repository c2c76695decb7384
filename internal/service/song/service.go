// Package song provides business logic for song acquisition and analysis.
package song

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
	"github.com/lingobeats/lingobeats-backend/internal/provider"
)

type songRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Song, error)
	Create(ctx context.Context, song *domain.Song) (*domain.Song, error)
}

type catalog interface {
	FindSongByID(ctx context.Context, id string) (*provider.SongInfo, error)
}

type levelClassifier interface {
	ClassifyFine(ctx context.Context, text string) (map[string]string, error)
}

// Service wraps song storage and the remote catalog.
type Service struct {
	log        *slog.Logger
	songs      songRepo
	catalog    catalog
	classifier levelClassifier
}

// NewService creates a new song service.
func NewService(log *slog.Logger, songs songRepo, catalog catalog, classifier levelClassifier) *Service {
	return &Service{
		log:        log.With("service", "song"),
		songs:      songs,
		catalog:    catalog,
		classifier: classifier,
	}
}

// EnsureSong returns the song, fetching it from the remote catalog and
// persisting it on a local miss. A concurrent create of the same song is
// harmless: the store keeps the first row and re-reads it.
func (s *Service) EnsureSong(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.songs.GetByID(ctx, id)
	if err == nil {
		return song, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get song %s: %w", id, err)
	}

	info, err := s.catalog.FindSongByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch song %s: %w", id, err)
	}
	if info == nil {
		return nil, fmt.Errorf("song %s: %w", id, domain.ErrNotFound)
	}

	created, err := s.songs.Create(ctx, mapInfo(info))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.songs.GetByID(ctx, id)
		}
		return nil, fmt.Errorf("create song %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "song acquired",
		slog.String("song_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// AnalyzeLevel scores the song's lyric word by word and aggregates the
// distribution across fine CEFR levels plus a weighted average.
// Returns domain.ErrNotFound when the song has no lyric yet.
func (s *Service) AnalyzeLevel(ctx context.Context, song *domain.Song) (domain.SongLevel, error) {
	if song.LyricText() == "" {
		return domain.SongLevel{}, fmt.Errorf("song %s has no lyric: %w", song.ID, domain.ErrNotFound)
	}

	wordLevels, err := s.classifier.ClassifyFine(ctx, song.LyricText())
	if err != nil {
		return domain.SongLevel{}, fmt.Errorf("classify song %s: %w", song.ID, err)
	}

	level := domain.AnalyzeLevels(wordLevels)

	s.log.InfoContext(ctx, "song level analyzed",
		slog.String("song_id", song.ID),
		slog.String("average", level.Average),
		slog.Int("words", len(wordLevels)),
	)
	return level, nil
}

// mapInfo converts catalog metadata into a domain song.
func mapInfo(info *provider.SongInfo) *domain.Song {
	song := &domain.Song{
		ID:            info.ID,
		Name:          info.Name,
		URI:           info.URI,
		ExternalURL:   info.ExternalURL,
		AlbumID:       info.AlbumID,
		AlbumName:     info.AlbumName,
		AlbumURL:      info.AlbumURL,
		AlbumImageURL: info.AlbumImageURL,
		Singers:       make([]domain.Singer, 0, len(info.Singers)),
	}
	for _, singer := range info.Singers {
		song.Singers = append(song.Singers, domain.Singer{ID: singer.ID, Name: singer.Name})
	}
	return song
}
