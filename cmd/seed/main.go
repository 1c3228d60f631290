// Command seed loads the demo catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/streamnexus/nexusbackend/config"
	"github.com/streamnexus/nexusbackend/database"
	"github.com/streamnexus/nexusbackend/dto"
	"github.com/streamnexus/nexusbackend/logger"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

func main() {
	sample := flag.Bool("sample", false, "insert a single sample entry instead of the demo catalog")
	reset := flag.Bool("reset", false, "delete every existing entry first")
	flag.Parse()

	cfg, err := config.LoadTooling()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl := logger.New(cfg.Log, cfg.Environment)
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := database.Open(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open stores", zap.Error(err))
	}
	defer func() { _ = st.Close(context.Background()) }()

	entries := utils.SampleCatalog()
	if *sample {
		entries = []dto.CreateMovieDTO{utils.SampleMovie()}
	}

	n, err := utils.SeedMovies(ctx, st.Movies, entries, *reset)
	if err != nil {
		zl.Error("seed failed", zap.Int("inserted", n), zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	zl.Info("catalog seeded", zap.Int("inserted", n), zap.Bool("reset", *reset))
}
