// Command lingobeats runs one enrichment pipeline operation for a song
// and prints the result as JSON.
//
// Operations (-op):
//
//	lyric    ensure the song's lyric is fetched, validated, and stored
//	         (triggers vocabulary extraction on first acquisition)
//	material ensure every linked vocabulary word has study material
//	level    analyze the lyric's CEFR difficulty distribution
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lingobeats/lingobeats-backend/internal/app"
	"github.com/lingobeats/lingobeats-backend/internal/config"
	"github.com/lingobeats/lingobeats-backend/internal/service/pipeline"
	"github.com/lingobeats/lingobeats-backend/pkg/ctxutil"
)

func main() {
	songID := flag.String("song", "", "catalog song id (required)")
	op := flag.String("op", "lyric", "operation: lyric | material | level")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall operation timeout")
	flag.Parse()

	if *songID == "" {
		fmt.Fprintln(os.Stderr, "usage: lingobeats -song <id> [-op lyric|material|level]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	requestID := uuid.NewString()

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting pipeline run",
		slog.String("version", app.BuildVersion()),
		slog.String("request_id", requestID),
		slog.String("song_id", *songID),
		slog.String("op", *op),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = ctxutil.WithRequestID(ctx, requestID)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	result, err := run(ctx, a.Pipeline, *op, *songID)
	if err != nil {
		logger.Error("pipeline operation failed",
			slog.String("op", *op),
			slog.String("song_id", *songID),
			slog.String("kind", string(pipeline.KindOf(err))),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, p *pipeline.Service, op, songID string) (any, error) {
	switch op {
	case "lyric":
		return p.GetOrBuildLyric(ctx, songID)
	case "material":
		return p.GetOrBuildMaterials(ctx, songID)
	case "level":
		return p.AnalyzeSong(ctx, songID)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}
