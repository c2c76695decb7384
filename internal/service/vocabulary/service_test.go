package vocabulary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockVocabRepo struct {
	ForSongFunc     func(ctx context.Context, songID string) ([]domain.Vocabulary, error)
	FindByNamesFunc func(ctx context.Context, names []string) ([]domain.Vocabulary, error)
	CreateManyFunc  func(ctx context.Context, vocabs []domain.Vocabulary) ([]domain.Vocabulary, error)
	LinkSongsFunc   func(ctx context.Context, songID string, vocabIDs []uuid.UUID) error

	linked []uuid.UUID
}

func (m *mockVocabRepo) ForSong(ctx context.Context, songID string) ([]domain.Vocabulary, error) {
	if m.ForSongFunc != nil {
		return m.ForSongFunc(ctx, songID)
	}
	return nil, nil
}

func (m *mockVocabRepo) FindByNames(ctx context.Context, names []string) ([]domain.Vocabulary, error) {
	if m.FindByNamesFunc != nil {
		return m.FindByNamesFunc(ctx, names)
	}
	return nil, nil
}

func (m *mockVocabRepo) CreateMany(ctx context.Context, vocabs []domain.Vocabulary) ([]domain.Vocabulary, error) {
	if m.CreateManyFunc != nil {
		return m.CreateManyFunc(ctx, vocabs)
	}
	out := make([]domain.Vocabulary, len(vocabs))
	for i, v := range vocabs {
		v.ID = uuid.New()
		out[i] = v
	}
	return out, nil
}

func (m *mockVocabRepo) LinkSongs(ctx context.Context, songID string, vocabIDs []uuid.UUID) error {
	m.linked = append(m.linked, vocabIDs...)
	if m.LinkSongsFunc != nil {
		return m.LinkSongsFunc(ctx, songID, vocabIDs)
	}
	return nil
}

type mockClassifier struct {
	ClassifyFunc func(ctx context.Context, text string) (map[string]domain.Level, error)
	calls        int
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (map[string]domain.Level, error) {
	m.calls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}
	return map[string]domain.Level{}, nil
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lyricSong() *domain.Song {
	s := domain.Song{ID: "song-1", Name: "Ghost Song"}
	withLyric := s.WithLyric(&domain.Lyric{Text: "ghost in the night alone"})
	return &withLyric
}

// ===========================================================================
// EnsureVocabulary
// ===========================================================================

func TestEnsureVocabulary_SkipsWhenAlreadyLinked(t *testing.T) {
	t.Parallel()

	repo := &mockVocabRepo{
		ForSongFunc: func(ctx context.Context, songID string) ([]domain.Vocabulary, error) {
			return []domain.Vocabulary{{ID: uuid.New(), Name: "ghost", Level: domain.LevelB}}, nil
		},
	}
	classifier := &mockClassifier{}

	svc := NewService(newTestLogger(), repo, classifier, passthroughTx{})
	err := svc.EnsureVocabulary(context.Background(), lyricSong())

	require.NoError(t, err)
	assert.Zero(t, classifier.calls, "linked song must not be re-classified")
	assert.Empty(t, repo.linked)
}

func TestEnsureVocabulary_CreatesAndLinksNewWords(t *testing.T) {
	t.Parallel()

	repo := &mockVocabRepo{}
	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, text string) (map[string]domain.Level, error) {
			return map[string]domain.Level{
				"ghost": domain.LevelB,
				"night": domain.LevelA,
				"alone": domain.LevelA,
			}, nil
		},
	}

	svc := NewService(newTestLogger(), repo, classifier, passthroughTx{})
	err := svc.EnsureVocabulary(context.Background(), lyricSong())

	require.NoError(t, err)
	assert.Len(t, repo.linked, 3, "every classified word gets linked")
}

func TestEnsureVocabulary_LinksExistingRowsWithoutRecreating(t *testing.T) {
	t.Parallel()

	existingID := uuid.New()
	var createdNames []string
	repo := &mockVocabRepo{
		FindByNamesFunc: func(ctx context.Context, names []string) ([]domain.Vocabulary, error) {
			return []domain.Vocabulary{{ID: existingID, Name: "ghost", Level: domain.LevelB}}, nil
		},
		CreateManyFunc: func(ctx context.Context, vocabs []domain.Vocabulary) ([]domain.Vocabulary, error) {
			out := make([]domain.Vocabulary, len(vocabs))
			for i, v := range vocabs {
				createdNames = append(createdNames, v.Name)
				v.ID = uuid.New()
				out[i] = v
			}
			return out, nil
		},
	}
	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, text string) (map[string]domain.Level, error) {
			return map[string]domain.Level{
				"ghost": domain.LevelB,
				"night": domain.LevelA,
			}, nil
		},
	}

	svc := NewService(newTestLogger(), repo, classifier, passthroughTx{})
	err := svc.EnsureVocabulary(context.Background(), lyricSong())

	require.NoError(t, err)
	assert.Equal(t, []string{"night"}, createdNames, "only new words are created")
	assert.Len(t, repo.linked, 2)
	assert.Contains(t, repo.linked, existingID)
}

func TestEnsureVocabulary_EmptyClassificationIsNoop(t *testing.T) {
	t.Parallel()

	findCalled := false
	repo := &mockVocabRepo{
		FindByNamesFunc: func(ctx context.Context, names []string) ([]domain.Vocabulary, error) {
			findCalled = true
			return nil, nil
		},
	}

	svc := NewService(newTestLogger(), repo, &mockClassifier{}, passthroughTx{})
	err := svc.EnsureVocabulary(context.Background(), lyricSong())

	require.NoError(t, err)
	assert.False(t, findCalled)
	assert.Empty(t, repo.linked)
}

func TestEnsureVocabulary_LinkFailureAborts(t *testing.T) {
	t.Parallel()

	repo := &mockVocabRepo{
		LinkSongsFunc: func(ctx context.Context, songID string, vocabIDs []uuid.UUID) error {
			return errors.New("connection reset")
		},
	}
	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, text string) (map[string]domain.Level, error) {
			return map[string]domain.Level{"ghost": domain.LevelB}, nil
		},
	}

	svc := NewService(newTestLogger(), repo, classifier, passthroughTx{})
	err := svc.EnsureVocabulary(context.Background(), lyricSong())

	assert.Error(t, err)
}
