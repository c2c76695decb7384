// Package app wires configuration, storage, providers, and services into
// the runnable enrichment pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingobeats/lingobeats-backend/internal/adapter/postgres"
	songrepo "github.com/lingobeats/lingobeats-backend/internal/adapter/postgres/song"
	vocabrepo "github.com/lingobeats/lingobeats-backend/internal/adapter/postgres/vocabulary"
	"github.com/lingobeats/lingobeats-backend/internal/adapter/provider/cefr"
	"github.com/lingobeats/lingobeats-backend/internal/adapter/provider/gemini"
	"github.com/lingobeats/lingobeats-backend/internal/adapter/provider/genius"
	"github.com/lingobeats/lingobeats-backend/internal/adapter/provider/spotify"
	"github.com/lingobeats/lingobeats-backend/internal/classifier"
	"github.com/lingobeats/lingobeats-backend/internal/config"
	"github.com/lingobeats/lingobeats-backend/internal/langdetect"
	lyricsvc "github.com/lingobeats/lingobeats-backend/internal/service/lyric"
	materialsvc "github.com/lingobeats/lingobeats-backend/internal/service/material"
	"github.com/lingobeats/lingobeats-backend/internal/service/pipeline"
	songsvc "github.com/lingobeats/lingobeats-backend/internal/service/song"
	vocabsvc "github.com/lingobeats/lingobeats-backend/internal/service/vocabulary"
)

// App holds the wired pipeline and the resources behind it.
type App struct {
	Pipeline *pipeline.Service

	pool *pgxpool.Pool
}

// New builds the application: connects the pool, applies migrations, and
// wires providers into the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(ctx, cfg.Database, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	songs := songrepo.New(pool)
	vocabs := vocabrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	catalog := spotify.NewProvider(cfg.Spotify, logger)
	lyrics := genius.NewProvider(cfg.Genius, logger)
	generator := gemini.NewProvider(cfg.Gemini, logger)
	oracle := cefr.NewProvider(cfg.Classifier, logger)

	levels := classifier.New(logger, oracle)
	detector := langdetect.New()

	songService := songsvc.NewService(logger, songs, catalog, levels)
	vocabService := vocabsvc.NewService(logger, vocabs, levels, tx)
	lyricService := lyricsvc.NewService(logger, songService, songs, lyrics, detector, vocabService)
	materialService := materialsvc.NewService(logger, vocabs, generator, cfg.Material.BatchSize)

	return &App{
		Pipeline: pipeline.NewService(logger, songService, lyricService, materialService),
		pool:     pool,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	a.pool.Close()
}
