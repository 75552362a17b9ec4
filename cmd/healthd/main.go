package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/partnerbi/bibot/internal/application/health"
	"github.com/partnerbi/bibot/internal/infrastructure/config"
	"github.com/partnerbi/bibot/internal/infrastructure/logger"
	"github.com/partnerbi/bibot/internal/interfaces/http/handler"
	"github.com/partnerbi/bibot/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	var once bool
	flag.BoolVar(&once, "once", false, "Run a single health check, print the result and exit (non-zero when unhealthy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Connections are opened lazily so the probe server can come up and
	// report 503 while MySQL or Redis are still starting.
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database handle", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(time.Minute)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	checker := health.NewChecker(
		health.PingerFunc(db.PingContext),
		health.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
		cfg.HTTP.ProbeTimeout,
		log,
	)

	if once {
		runOnce(checker, log)
		return
	}

	engine := router.New(log, handler.NewHealthHandler(checker))

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("Health endpoint server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Health endpoint server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down health endpoint server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

// runOnce performs a single check and exits non-zero when any dependency
// fails, so the binary doubles as a container HEALTHCHECK command.
func runOnce(checker *health.Checker, log *zap.Logger) {
	status := checker.Check(context.Background())

	out, err := json.Marshal(status)
	if err != nil {
		log.Fatal("Failed to encode health status", zap.Error(err))
	}
	fmt.Println(string(out))

	if !status.Healthy() {
		_ = logger.Sync(log)
		os.Exit(1)
	}
}
