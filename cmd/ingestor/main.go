package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"terminal_plus/internal/adapters/exports"
	"terminal_plus/internal/adapters/observability"
	redisad "terminal_plus/internal/adapters/redis"
	"terminal_plus/internal/app"
	"terminal_plus/internal/shared"
	mysqlrepo "terminal_plus/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.ExportsBase).
		Str("airport", cfg.AirportCode).
		Int("workers", cfg.Workers).
		Int("sources", len(shared.SourceManifest)).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := exports.New(cfg.ExportsBase, cfg.ExportsKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize exports client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(client, repo, cache)

	runID := time.Now().UTC().Format("20060102T150405Z")
	res, err := ing.Run(ctx, cfg.AirportCode, runID, shared.SourceManifest, cfg.Workers)
	if err != nil {
		// A failed source aborts before the store is touched; the
		// previous canonical set stays live.
		log.Fatal().Err(err).Str("run", runID).Msg("ingestion run failed")
	}

	observability.ObserveMerge(cfg.AirportCode, len(res.Canonical), len(res.Skipped))
	for _, s := range res.Skipped {
		observability.ObserveMergeSkip(cfg.AirportCode, s.Reason)
	}

	log.Info().Str("run", runID).Msg("ingestion completed")
}
