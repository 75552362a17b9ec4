package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/partnerbi/bibot/internal/application/provision"
	"github.com/partnerbi/bibot/internal/infrastructure/cache"
	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"github.com/partnerbi/bibot/internal/infrastructure/logger"
	"github.com/partnerbi/bibot/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall timeout for the seed run")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	store, err := cache.NewStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to cache", zap.Error(err))
	}
	defer store.Close()

	seeder := provision.NewSeeder(
		persistence.NewGormPartnerRepository(db.DB),
		persistence.NewGormTurnoverRepository(db.DB),
		store,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	summary, err := seeder.Seed(ctx, provision.DefaultDataset())
	if err != nil {
		log.Fatal("Seed failed", zap.Error(err))
	}

	log.Info("Seed dataset loaded",
		zap.Int("partners", summary.Partners),
		zap.Int("turnovers", summary.Turnovers),
		zap.Int64("cache_keys_flushed", summary.CacheKeysFlushed),
	)
}
