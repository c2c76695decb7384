package pipeline

import (
	"context"
	"errors"
	"fmt"
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

type mockSongService struct {
	EnsureSongFunc   func(ctx context.Context, id string) (*domain.Song, error)
	AnalyzeLevelFunc func(ctx context.Context, song *domain.Song) (domain.SongLevel, error)
}

func (m *mockSongService) EnsureSong(ctx context.Context, id string) (*domain.Song, error) {
	if m.EnsureSongFunc != nil {
		return m.EnsureSongFunc(ctx, id)
	}
	return &domain.Song{ID: id, Name: "Ghost Song"}, nil
}

func (m *mockSongService) AnalyzeLevel(ctx context.Context, song *domain.Song) (domain.SongLevel, error) {
	if m.AnalyzeLevelFunc != nil {
		return m.AnalyzeLevelFunc(ctx, song)
	}
	return domain.SongLevel{}, nil
}

type mockLyricService struct {
	EnsureLyricFunc func(ctx context.Context, songID string) (*domain.Song, error)
}

func (m *mockLyricService) EnsureLyric(ctx context.Context, songID string) (*domain.Song, error) {
	if m.EnsureLyricFunc != nil {
		return m.EnsureLyricFunc(ctx, songID)
	}
	return &domain.Song{ID: songID, Name: "Ghost Song"}, nil
}

type mockMaterialService struct {
	FillMaterialsFunc func(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error)
}

func (m *mockMaterialService) FillMaterials(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error) {
	if m.FillMaterialsFunc != nil {
		return m.FillMaterialsFunc(ctx, song)
	}
	return nil, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(songs *mockSongService, lyrics *mockLyricService, materials *mockMaterialService) *Service {
	return NewService(newTestLogger(), songs, lyrics, materials)
}

// ===========================================================================
// Operations
// ===========================================================================

func TestGetOrBuildLyric_Success(t *testing.T) {
	t.Parallel()

	lyrics := &mockLyricService{
		EnsureLyricFunc: func(ctx context.Context, songID string) (*domain.Song, error) {
			s := domain.Song{ID: songID, Name: "Ghost Song"}
			withLyric := s.WithLyric(&domain.Lyric{Text: "words"})
			return &withLyric, nil
		},
	}

	svc := newService(&mockSongService{}, lyrics, &mockMaterialService{})
	got, err := svc.GetOrBuildLyric(context.Background(), "song-1")

	require.NoError(t, err)
	assert.Equal(t, "words", got.Lyric.Text)
}

func TestGetOrBuildLyric_TagsValidation(t *testing.T) {
	t.Parallel()

	lyrics := &mockLyricService{
		EnsureLyricFunc: func(ctx context.Context, songID string) (*domain.Song, error) {
			return nil, fmt.Errorf("not recommended: %w", domain.ErrValidation)
		},
	}

	svc := newService(&mockSongService{}, lyrics, &mockMaterialService{})
	_, err := svc.GetOrBuildLyric(context.Background(), "song-1")

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, domain.ErrValidation, "cause stays reachable")
}

func TestGetOrBuildMaterials_Success(t *testing.T) {
	t.Parallel()

	materials := &mockMaterialService{
		FillMaterialsFunc: func(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error) {
			v := domain.Vocabulary{ID: uuid.New(), Name: "ghost", Level: domain.LevelB}
			return []domain.Vocabulary{v.WithMaterial(&domain.Material{Word: "ghost"})}, nil
		},
	}

	svc := newService(&mockSongService{}, &mockLyricService{}, materials)
	got, err := svc.GetOrBuildMaterials(context.Background(), "song-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].HasMaterial())
}

func TestGetOrBuildMaterials_NoVocabularyIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newService(&mockSongService{}, &mockLyricService{}, &mockMaterialService{})
	_, err := svc.GetOrBuildMaterials(context.Background(), "song-1")

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetOrBuildMaterials_UpstreamKind(t *testing.T) {
	t.Parallel()

	materials := &mockMaterialService{
		FillMaterialsFunc: func(ctx context.Context, song *domain.Song) ([]domain.Vocabulary, error) {
			return nil, fmt.Errorf("all batches failed: %w", domain.ErrUpstream)
		},
	}

	svc := newService(&mockSongService{}, &mockLyricService{}, materials)
	_, err := svc.GetOrBuildMaterials(context.Background(), "song-1")

	require.Error(t, err)
	assert.Equal(t, KindUpstreamUnavailable, KindOf(err))
}

func TestAnalyzeSong(t *testing.T) {
	t.Parallel()

	songs := &mockSongService{
		AnalyzeLevelFunc: func(ctx context.Context, song *domain.Song) (domain.SongLevel, error) {
			return domain.SongLevel{Average: "B1"}, nil
		},
	}

	svc := newService(songs, &mockLyricService{}, &mockMaterialService{})
	level, err := svc.AnalyzeSong(context.Background(), "song-1")

	require.NoError(t, err)
	assert.Equal(t, "B1", level.Average)
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindNotFound, KindOf(domain.ErrNotFound))
}

func TestOperations_EmptySongIDIsValidation(t *testing.T) {
	t.Parallel()

	called := false
	lyrics := &mockLyricService{
		EnsureLyricFunc: func(ctx context.Context, songID string) (*domain.Song, error) {
			called = true
			return nil, nil
		},
	}
	svc := newService(&mockSongService{}, lyrics, &mockMaterialService{})

	_, err := svc.GetOrBuildLyric(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called, "empty song id must be rejected before any stage runs")

	_, err = svc.GetOrBuildMaterials(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.AnalyzeSong(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
