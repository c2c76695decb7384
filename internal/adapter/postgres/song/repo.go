// Package song implements song persistence using PostgreSQL.
// Songs and their singer links are written with insert-or-ignore semantics
// so concurrent acquisitions of the same song never error. Lyrics are
// content-addressed: the row key is the checksum of the normalized text.
package song

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingobeats/lingobeats-backend/internal/adapter/postgres"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides song persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new song repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns the song with its singers and attached lyric, or
// domain.ErrNotFound when the id is unknown locally.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("s.id", "s.name", "s.uri", "s.external_url",
			"s.album_id", "s.album_name", "s.album_url", "s.album_image_url",
			"l.text").
		From("songs s").
		LeftJoin("lyrics l ON l.id = s.lyric_id").
		Where(sq.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build song query: %w", err)
	}

	var (
		song      domain.Song
		lyricText *string
	)
	err = querier.QueryRow(ctx, query, args...).Scan(
		&song.ID, &song.Name, &song.URI, &song.ExternalURL,
		&song.AlbumID, &song.AlbumName, &song.AlbumURL, &song.AlbumImageURL,
		&lyricText,
	)
	if err != nil {
		return nil, postgres.MapError(err, "song", id)
	}
	if lyricText != nil {
		song.Lyric = &domain.Lyric{Text: *lyricText}
	}

	singers, err := r.singersFor(ctx, querier, id)
	if err != nil {
		return nil, err
	}
	song.Singers = singers

	return &song, nil
}

func (r *Repo) singersFor(ctx context.Context, querier postgres.Querier, songID string) ([]domain.Singer, error) {
	query, args, err := psql.
		Select("si.id", "si.name").
		From("singers si").
		Join("songs_singers ss ON ss.singer_id = si.id").
		Where(sq.Eq{"ss.song_id": songID}).
		OrderBy("ss.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build singers query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "song singers", songID)
	}
	defer rows.Close()

	var singers []domain.Singer
	for rows.Next() {
		var s domain.Singer
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan singer: %w", err)
		}
		singers = append(singers, s)
	}
	return singers, rows.Err()
}

// Create persists the song together with its singers and their links.
// Every insert is ON CONFLICT DO NOTHING: a concurrent create of the same
// song is not an error. The persisted entity is re-read and returned.
func (r *Repo) Create(ctx context.Context, song *domain.Song) (*domain.Song, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO songs (id, name, uri, external_url, album_id, album_name, album_url, album_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		song.ID, song.Name, song.URI, song.ExternalURL,
		song.AlbumID, song.AlbumName, song.AlbumURL, song.AlbumImageURL,
	)
	for i, singer := range song.Singers {
		batch.Queue(
			`INSERT INTO singers (id, name) VALUES ($1, $2)
			 ON CONFLICT (id) DO NOTHING`,
			singer.ID, singer.Name,
		)
		batch.Queue(
			`INSERT INTO songs_singers (song_id, singer_id, position)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (song_id, singer_id) DO NOTHING`,
			song.ID, singer.ID, i,
		)
	}

	results := querier.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, postgres.MapError(err, "song", song.ID)
		}
	}
	if err := results.Close(); err != nil {
		return nil, postgres.MapError(err, "song", song.ID)
	}

	return r.GetByID(ctx, song.ID)
}

// AttachLyric stores the lyric under its content address and points the song
// at it. If another song already stored identical-hash content, the existing
// row is reused and only the link is written (true deduplication).
func (r *Repo) AttachLyric(ctx context.Context, songID string, lyric domain.Lyric) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	checksum := lyric.Checksum()

	_, err := querier.Exec(ctx,
		`INSERT INTO lyrics (id, text) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		checksum, lyric.Text,
	)
	if err != nil {
		return postgres.MapError(err, "lyric", checksum)
	}

	tag, err := querier.Exec(ctx,
		`UPDATE songs SET lyric_id = $1 WHERE id = $2`,
		checksum, songID,
	)
	if err != nil {
		return postgres.MapError(err, "song lyric", songID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("song %s: %w", songID, domain.ErrNotFound)
	}

	return nil
}
