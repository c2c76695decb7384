// Package vocabulary provides business logic for extracting a song's
// vocabulary from its lyric and linking it in storage.
package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

type vocabRepo interface {
	ForSong(ctx context.Context, songID string) ([]domain.Vocabulary, error)
	FindByNames(ctx context.Context, names []string) ([]domain.Vocabulary, error)
	CreateMany(ctx context.Context, vocabs []domain.Vocabulary) ([]domain.Vocabulary, error)
	LinkSongs(ctx context.Context, songID string, vocabIDs []uuid.UUID) error
}

type levelClassifier interface {
	Classify(ctx context.Context, text string) (map[string]domain.Level, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service wraps vocabulary extraction around the classifier and storage.
type Service struct {
	log        *slog.Logger
	vocabs     vocabRepo
	classifier levelClassifier
	tx         txManager
}

// NewService creates a new vocabulary service.
func NewService(log *slog.Logger, vocabs vocabRepo, classifier levelClassifier, tx txManager) *Service {
	return &Service{
		log:        log.With("service", "vocabulary"),
		vocabs:     vocabs,
		classifier: classifier,
		tx:         tx,
	}
}

// EnsureVocabulary extracts, classifies, and links the song's vocabulary.
// A song that already has any linked vocabulary is considered done and
// skipped wholesale. New words and existing rows reached through other
// songs are linked in one transaction, so a storage failure leaves no
// partial link set behind.
func (s *Service) EnsureVocabulary(ctx context.Context, song *domain.Song) error {
	linked, err := s.vocabs.ForSong(ctx, song.ID)
	if err != nil {
		return fmt.Errorf("load vocabulary for %s: %w", song.ID, err)
	}
	if len(linked) > 0 {
		s.log.DebugContext(ctx, "vocabulary already linked",
			slog.String("song_id", song.ID),
			slog.Int("count", len(linked)),
		)
		return nil
	}

	levels, err := s.classifier.Classify(ctx, song.LyricText())
	if err != nil {
		return fmt.Errorf("classify lyric for %s: %w", song.ID, err)
	}
	if len(levels) == 0 {
		s.log.InfoContext(ctx, "no classifiable words", slog.String("song_id", song.ID))
		return nil
	}

	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}

	existing, err := s.vocabs.FindByNames(ctx, names)
	if err != nil {
		return fmt.Errorf("find vocabulary for %s: %w", song.ID, err)
	}

	known := make(map[string]struct{}, len(existing))
	ids := make([]uuid.UUID, 0, len(levels))
	for _, v := range existing {
		known[v.Name] = struct{}{}
		ids = append(ids, v.ID)
	}

	var fresh []domain.Vocabulary
	for name, level := range levels {
		if _, ok := known[name]; ok {
			continue
		}
		fresh = append(fresh, domain.Vocabulary{Name: name, Level: level})
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if len(fresh) > 0 {
			created, err := s.vocabs.CreateMany(ctx, fresh)
			if err != nil {
				return fmt.Errorf("create vocabulary: %w", err)
			}
			for _, v := range created {
				ids = append(ids, v.ID)
			}
		}
		return s.vocabs.LinkSongs(ctx, song.ID, ids)
	})
	if err != nil {
		return fmt.Errorf("link vocabulary for %s: %w", song.ID, err)
	}

	s.log.InfoContext(ctx, "vocabulary linked",
		slog.String("song_id", song.ID),
		slog.Int("new", len(fresh)),
		slog.Int("existing", len(existing)),
	)
	return nil
}
