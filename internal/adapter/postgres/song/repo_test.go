package song_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingobeats/lingobeats-backend/internal/adapter/postgres/song"
	"github.com/lingobeats/lingobeats-backend/internal/adapter/postgres/testhelper"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*song.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return song.New(pool), pool
}

// buildSong creates a domain.Song with two singers suitable for Create.
func buildSong() domain.Song {
	suffix := uuid.New().String()[:8]
	return domain.Song{
		ID:            "song-" + suffix,
		Name:          "Song " + suffix,
		URI:           "spotify:track:" + suffix,
		ExternalURL:   "https://open.spotify.com/track/" + suffix,
		AlbumID:       "album-" + suffix,
		AlbumName:     "Album " + suffix,
		AlbumURL:      "https://open.spotify.com/album/" + suffix,
		AlbumImageURL: "https://i.scdn.co/image/" + suffix,
		Singers: []domain.Singer{
			{ID: "singer-a-" + suffix, Name: "Singer A " + suffix},
			{ID: "singer-b-" + suffix, Name: "Singer B " + suffix},
		},
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	s := buildSong()
	got, err := repo.Create(ctx, &s)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID != s.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, s.ID)
	}
	if got.Name != s.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, s.Name)
	}
	if len(got.Singers) != 2 {
		t.Fatalf("expected 2 singers, got %d", len(got.Singers))
	}
	if got.Singers[0].Name != s.Singers[0].Name {
		t.Errorf("singer order mismatch: got %q first, want %q", got.Singers[0].Name, s.Singers[0].Name)
	}
	if got.Lyric != nil {
		t.Errorf("expected no lyric on fresh song, got %v", got.Lyric)
	}
}

func TestRepo_Create_Idempotent(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	s := buildSong()
	if _, err := repo.Create(ctx, &s); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	got, err := repo.Create(ctx, &s)
	if err != nil {
		t.Fatalf("Create second: unexpected error: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("ID mismatch after re-create: got %s, want %s", got.ID, s.ID)
	}
}

func TestRepo_Create_SharedSinger(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	shared := domain.Singer{ID: "singer-shared-" + uuid.New().String()[:8], Name: "Shared Singer"}

	s1 := buildSong()
	s1.Singers = []domain.Singer{shared}
	s2 := buildSong()
	s2.Singers = []domain.Singer{shared}

	if _, err := repo.Create(ctx, &s1); err != nil {
		t.Fatalf("Create first song: %v", err)
	}
	got, err := repo.Create(ctx, &s2)
	if err != nil {
		t.Fatalf("Create second song with shared singer: %v", err)
	}
	if len(got.Singers) != 1 || got.Singers[0].ID != shared.ID {
		t.Errorf("expected shared singer on second song, got %+v", got.Singers)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "no-such-song-"+uuid.New().String()[:8])
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_AttachLyric(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	s := buildSong()
	if _, err := repo.Create(ctx, &s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	lyric := domain.Lyric{Text: "Ghost in the night\nAlone again " + uuid.New().String()[:8]}
	if err := repo.AttachLyric(ctx, s.ID, lyric); err != nil {
		t.Fatalf("AttachLyric: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID after attach: %v", err)
	}
	if got.Lyric == nil {
		t.Fatal("expected lyric attached, got nil")
	}
	if got.Lyric.Text != lyric.Text {
		t.Errorf("lyric text mismatch: got %q, want %q", got.Lyric.Text, lyric.Text)
	}
}

func TestRepo_AttachLyric_SameTextTwoSongs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	s1 := buildSong()
	s2 := buildSong()
	if _, err := repo.Create(ctx, &s1); err != nil {
		t.Fatalf("Create s1: %v", err)
	}
	if _, err := repo.Create(ctx, &s2); err != nil {
		t.Fatalf("Create s2: %v", err)
	}

	lyric := domain.Lyric{Text: "Same words, same row " + uuid.New().String()[:8]}
	if err := repo.AttachLyric(ctx, s1.ID, lyric); err != nil {
		t.Fatalf("AttachLyric s1: %v", err)
	}
	if err := repo.AttachLyric(ctx, s2.ID, lyric); err != nil {
		t.Fatalf("AttachLyric s2: %v", err)
	}

	// Two songs, one content-addressed lyric row.
	var count int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM lyrics WHERE id = $1`, lyric.Checksum()).Scan(&count)
	if err != nil {
		t.Fatalf("count lyrics: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 lyric row, got %d", count)
	}
}

func TestRepo_AttachLyric_UnknownSong(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	lyric := domain.Lyric{Text: "orphan text " + uuid.New().String()[:8]}
	err := repo.AttachLyric(ctx, "no-such-song", lyric)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
