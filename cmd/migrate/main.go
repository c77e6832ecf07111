// Command migrate copies the JSON data files of a file-backed deployment into
// the store selected by STORAGE_DRIVER. Records whose id already exists in the
// target are skipped, so the command can be re-run safely.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/config"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	dir := flag.String("dir", cfg.DataDir, "directory holding branches.json, slides.json, reviews.json and contact.json")
	flag.Parse()

	if err := checkTarget(cfg, *dir); err != nil {
		log.Fatal().Err(err).Msg("invalid migration target")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, _, err := server.OpenStorage(ctx, cfg, false)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer st.Close(context.Background())

	results, err := Run(ctx, *dir, st)
	if err != nil {
		log.Error().Err(err).Msg("migration aborted")
	}
	for _, r := range results {
		log.Info().
			Str("kind", r.Kind).
			Int("success", r.Success).
			Int("skipped", r.Skipped).
			Int("failed", r.Failed).
			Msg("migration finished")
	}
	if err != nil {
		os.Exit(1)
	}
}
