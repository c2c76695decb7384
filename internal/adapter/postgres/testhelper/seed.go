package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSong creates a song with one singer and no lyric.
// Returns a filled domain.Song.
func SeedSong(t *testing.T, pool *pgxpool.Pool) domain.Song {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	song := domain.Song{
		ID:            "song-" + suffix,
		Name:          "Test Song " + suffix,
		URI:           "spotify:track:" + suffix,
		ExternalURL:   "https://open.spotify.com/track/" + suffix,
		AlbumID:       "album-" + suffix,
		AlbumName:     "Test Album " + suffix,
		AlbumURL:      "https://open.spotify.com/album/" + suffix,
		AlbumImageURL: "https://i.scdn.co/image/" + suffix,
		Singers: []domain.Singer{
			{ID: "singer-" + suffix, Name: "Test Singer " + suffix},
		},
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO songs (id, name, uri, external_url, album_id, album_name, album_url, album_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		song.ID, song.Name, song.URI, song.ExternalURL,
		song.AlbumID, song.AlbumName, song.AlbumURL, song.AlbumImageURL,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSong insert song: %v", err)
	}

	for i, s := range song.Singers {
		_, err := pool.Exec(ctx,
			`INSERT INTO singers (id, name) VALUES ($1, $2)`,
			s.ID, s.Name,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSong insert singer[%d]: %v", i, err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO songs_singers (song_id, singer_id, position) VALUES ($1, $2, $3)`,
			song.ID, s.ID, i,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSong link singer[%d]: %v", i, err)
		}
	}

	return song
}

// SeedLyric attaches a lyric with the given text to a song.
// The lyric id is the content checksum, same as production writes.
func SeedLyric(t *testing.T, pool *pgxpool.Pool, songID, text string) domain.Lyric {
	t.Helper()
	ctx := context.Background()

	lyric := domain.Lyric{Text: text}
	checksum := lyric.Checksum()

	_, err := pool.Exec(ctx,
		`INSERT INTO lyrics (id, text) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		checksum, text,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLyric insert lyric: %v", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE songs SET lyric_id = $1 WHERE id = $2`,
		checksum, songID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLyric attach lyric: %v", err)
	}

	return lyric
}

// SeedVocabulary creates a vocabulary row with the given level and an
// optional material payload, linked to the song.
func SeedVocabulary(t *testing.T, pool *pgxpool.Pool, songID, name string, level domain.Level, material *domain.Material) domain.Vocabulary {
	t.Helper()
	ctx := context.Background()

	vocab := domain.Vocabulary{
		ID:       uuid.New(),
		Name:     name,
		Level:    level,
		Material: material,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO vocabularies (id, name, level, material) VALUES ($1, $2, $3, $4)`,
		vocab.ID, vocab.Name, string(vocab.Level), materialJSON(t, material),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVocabulary insert vocabulary: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO songs_vocabularies (song_id, vocabulary_id) VALUES ($1, $2)`,
		songID, vocab.ID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVocabulary link song: %v", err)
	}

	return vocab
}

func materialJSON(t *testing.T, m *domain.Material) []byte {
	t.Helper()
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("testhelper: marshal material: %v", err)
	}
	return b
}
