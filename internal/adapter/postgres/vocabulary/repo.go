// Package vocabulary implements vocabulary persistence using PostgreSQL.
// Rows are global (one per word, unique by name) and linked to songs via
// the songs_vocabularies join table. Material lives in a jsonb column that
// is filled exactly once.
package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingobeats/lingobeats-backend/internal/adapter/postgres"
	"github.com/lingobeats/lingobeats-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ForSong returns all vocabulary linked to the song, ordered by name.
func (r *Repo) ForSong(ctx context.Context, songID string) ([]domain.Vocabulary, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("v.id", "v.name", "v.level", "v.material").
		From("vocabularies v").
		Join("songs_vocabularies sv ON sv.vocabulary_id = v.id").
		Where(sq.Eq{"sv.song_id": songID}).
		OrderBy("v.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary for song", songID)
	}
	defer rows.Close()

	return scanVocabularies(rows)
}

// FindByNames returns the vocabulary rows whose name exactly matches one of
// the given names. Missing names are simply absent from the result.
func (r *Repo) FindByNames(ctx context.Context, names []string) ([]domain.Vocabulary, error) {
	if len(names) == 0 {
		return []domain.Vocabulary{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("v.id", "v.name", "v.level", "v.material").
		From("vocabularies v").
		Where(sq.Eq{"v.name": names}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary by names", len(names))
	}
	defer rows.Close()

	return scanVocabularies(rows)
}

// CreateMany inserts new vocabulary rows. Words that raced into existence
// since the caller's lookup are skipped via ON CONFLICT DO NOTHING; the
// returned slice holds the current rows for every requested name, whether
// inserted here or already present.
func (r *Repo) CreateMany(ctx context.Context, vocabs []domain.Vocabulary) ([]domain.Vocabulary, error) {
	if len(vocabs) == 0 {
		return []domain.Vocabulary{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	names := make([]string, 0, len(vocabs))
	for _, v := range vocabs {
		id := v.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(
			`INSERT INTO vocabularies (id, name, level)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			id, v.Name, string(v.Level),
		)
		names = append(names, v.Name)
	}

	results := querier.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, postgres.MapError(err, "vocabulary create", names[i])
		}
	}
	if err := results.Close(); err != nil {
		return nil, postgres.MapError(err, "vocabulary create", len(names))
	}

	return r.FindByNames(ctx, names)
}

// LinkSongs links the vocabulary ids to the song in one batch.
// Existing links are skipped, so re-linking is idempotent.
func (r *Repo) LinkSongs(ctx context.Context, songID string, vocabIDs []uuid.UUID) error {
	if len(vocabIDs) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, id := range vocabIDs {
		batch.Queue(
			`INSERT INTO songs_vocabularies (song_id, vocabulary_id)
			 VALUES ($1, $2)
			 ON CONFLICT (song_id, vocabulary_id) DO NOTHING`,
			songID, id,
		)
	}

	results := querier.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return postgres.MapError(err, "vocabulary link", songID)
		}
	}
	return postgres.MapError(results.Close(), "vocabulary link", songID)
}

// UpdateMaterial fills the material payload for a vocabulary row.
// The guard `material IS NULL` makes the absent→present transition
// happen at most once; a second write is a silent no-op.
func (r *Repo) UpdateMaterial(ctx context.Context, vocabID uuid.UUID, material *domain.Material) error {
	if material == nil {
		return fmt.Errorf("vocabulary %s: nil material: %w", vocabID, domain.ErrValidation)
	}

	payload, err := json.Marshal(material)
	if err != nil {
		return fmt.Errorf("marshal material for %s: %w", vocabID, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	_, err = querier.Exec(ctx,
		`UPDATE vocabularies SET material = $1 WHERE id = $2 AND material IS NULL`,
		payload, vocabID,
	)
	return postgres.MapError(err, "vocabulary material", vocabID)
}

func scanVocabularies(rows pgx.Rows) ([]domain.Vocabulary, error) {
	var vocabs []domain.Vocabulary
	for rows.Next() {
		var (
			v       domain.Vocabulary
			level   string
			rawJSON []byte
		)
		if err := rows.Scan(&v.ID, &v.Name, &level, &rawJSON); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		v.Level = domain.Level(level)
		if len(rawJSON) > 0 {
			var m domain.Material
			if err := json.Unmarshal(rawJSON, &m); err != nil {
				return nil, fmt.Errorf("decode material for %s: %w", v.Name, err)
			}
			v.Material = &m
		}
		vocabs = append(vocabs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if vocabs == nil {
		vocabs = []domain.Vocabulary{}
	}
	return vocabs, nil
}
